package weather

import "testing"

func TestFormatTemperature(t *testing.T) {
	cases := []struct {
		celsius float64
		unit    TemperatureUnit
		want    string
	}{
		{18.3, UnitCelsius, "18°C"},
		{18.6, UnitCelsius, "19°C"},
		{-0.4, UnitCelsius, "0°C"},
		{18.3, UnitFahrenheit, "65°F"}, // 64.94 rounds to 65
		{0, UnitFahrenheit, "32°F"},
	}
	for _, tc := range cases {
		if got := FormatTemperature(tc.celsius, tc.unit); got != tc.want {
			t.Errorf("FormatTemperature(%.1f, %s) = %q, want %q", tc.celsius, tc.unit, got, tc.want)
		}
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	if got := CelsiusToFahrenheit(100); got != 212 {
		t.Errorf("CelsiusToFahrenheit(100) = %.1f, want 212", got)
	}
	if got := FahrenheitToCelsius(32); got != 0 {
		t.Errorf("FahrenheitToCelsius(32) = %.1f, want 0", got)
	}
}

func TestWindDirection(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{350, "N"},
		{22.5, "NNE"},
	}
	for _, tc := range cases {
		if got := WindDirection(tc.deg); got != tc.want {
			t.Errorf("WindDirection(%.1f) = %q, want %q", tc.deg, got, tc.want)
		}
	}
}

func TestFavoriteIDStable(t *testing.T) {
	a := FavoriteID(51.505, -0.09)
	b := FavoriteID(51.505, -0.09)
	if a != b {
		t.Fatalf("FavoriteID not deterministic: %q vs %q", a, b)
	}
	if a != "51.505--0.09" {
		t.Errorf("unexpected derivation: %q", a)
	}
	if FavoriteID(51.505, -0.09) == FavoriteID(51.505, 0.09) {
		t.Error("distinct coordinates must derive distinct ids")
	}
}

func TestCoordKeyRoundTrip(t *testing.T) {
	lat, lng, err := ParseCoordKey(CoordKey(51.505, -0.09))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 51.505 || lng != -0.09 {
		t.Errorf("round trip lost precision: %v, %v", lat, lng)
	}
}
