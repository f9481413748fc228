package owm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const currentFixture = `{
	"coord": {"lat": 51.5074, "lon": -0.1278},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 18.3, "feels_like": 17.9, "temp_min": 16.1, "temp_max": 20.2, "pressure": 1012, "humidity": 72},
	"visibility": 10000,
	"wind": {"speed": 4.1, "deg": 250},
	"dt": 1717243200,
	"sys": {"country": "GB", "sunrise": 1717210000, "sunset": 1717268000},
	"name": "London"
}`

const forecastFixture = `{
	"list": [
		{"dt": 1717243200, "main": {"temp": 18.3}, "weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}]},
		{"dt": 1717254000, "main": {"temp": 16.0}, "weather": [{"main": "Clouds", "description": "few clouds", "icon": "02d"}]}
	],
	"city": {"coord": {"lat": 51.5074, "lon": -0.1278}}
}`

const geocodeFixture = `[
	{"name": "London", "lat": 51.5074, "lon": -0.1278, "country": "GB"},
	{"name": "London", "lat": 42.9834, "lon": -81.233, "country": "CA", "state": "Ontario"}
]`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") == "" {
			t.Errorf("missing appid on %s", r.URL.Path)
		}
		switch r.URL.Path {
		case "/data/2.5/weather":
			if r.URL.Query().Get("units") != "metric" {
				t.Error("weather request must use metric units")
			}
			w.Write([]byte(currentFixture))
		case "/data/2.5/forecast":
			w.Write([]byte(forecastFixture))
		case "/geo/1.0/direct":
			w.Write([]byte(geocodeFixture))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestCurrentWeatherParsing(t *testing.T) {
	srv := fixtureServer(t)
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", srv.URL)
	snap, err := c.CurrentWeather(context.Background(), 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Name != "London" || snap.Country != "GB" {
		t.Errorf("place: got %s/%s", snap.Name, snap.Country)
	}
	if snap.Temperature != 18.3 || snap.FeelsLike != 17.9 {
		t.Errorf("temps: got %.1f/%.1f", snap.Temperature, snap.FeelsLike)
	}
	if snap.ConditionID != 500 || snap.ConditionIcon != "10d" {
		t.Errorf("condition: got %d/%s", snap.ConditionID, snap.ConditionIcon)
	}
	if snap.Sunrise != 1717210000 || snap.Sunset != 1717268000 {
		t.Errorf("sun times: got %d/%d", snap.Sunrise, snap.Sunset)
	}
}

func TestForecastParsing(t *testing.T) {
	srv := fixtureServer(t)
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", srv.URL)
	series, err := c.Forecast(context.Background(), 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(series.Samples))
	}
	if series.Samples[1].Condition != "Clouds" || series.Samples[1].Temperature != 16.0 {
		t.Errorf("unexpected second sample: %+v", series.Samples[1])
	}
}

func TestGeocodeParsing(t *testing.T) {
	srv := fixtureServer(t)
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", srv.URL)
	got, err := c.Geocode(context.Background(), "London", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[1].State != "Ontario" || got[1].Lng != -81.233 {
		t.Errorf("unexpected candidate: %+v", got[1])
	}
}

func TestMissingAPIKeyIsAnError(t *testing.T) {
	c := NewClient(&http.Client{Timeout: time.Second}, "", "")
	if _, err := c.CurrentWeather(context.Background(), 0, 0); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", srv.URL)
	if _, err := c.CurrentWeather(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error from 500 response")
	}
}
