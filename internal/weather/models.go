package weather

import (
	"strconv"
	"time"
)

// TemperatureUnit is the global display preference for temperatures.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// Valid reports whether u is one of the known units.
func (u TemperatureUnit) Valid() bool {
	return u == UnitCelsius || u == UnitFahrenheit
}

// Location is a place the user has selected, by search, map click or
// geolocation. Name may be a placeholder until a weather fetch resolves
// the canonical place name.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// Key returns the canonical cache key for this location's coordinates.
func (l Location) Key() string {
	return CoordKey(l.Lat, l.Lng)
}

// CoordKey derives a stable string key from a coordinate pair.
// strconv.FormatFloat with precision -1 yields the shortest exact
// representation, so equal coordinates always produce equal keys.
func CoordKey(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// FavoriteLocation is a user-pinned place, persisted independently of the
// current selection.
type FavoriteLocation struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Country string  `json:"country"`
}

// FavoriteID derives the dedup/lookup key for a favorite from its
// coordinates. The derivation is an explicit pure function so the key is
// stable regardless of how the coordinates were formatted upstream.
func FavoriteID(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "-" + strconv.FormatFloat(lng, 'f', -1, 64)
}

// WeatherSnapshot is the current-conditions view for a location.
// Transient; re-fetched per selection and cached briefly.
type WeatherSnapshot struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp int64   `json:"timestamp"`

	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"windSpeed"`
	WindDeg     int     `json:"windDeg"`
	Visibility  int     `json:"visibility"`
	Sunrise     int64   `json:"sunrise"`
	Sunset      int64   `json:"sunset"`

	ConditionID   int    `json:"conditionId"`
	Condition     string `json:"condition"`
	Description   string `json:"description"`
	ConditionIcon string `json:"conditionIcon"`
}

// ForecastSample is a single 3-hour forecast entry.
type ForecastSample struct {
	Timestamp   int64   `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Time returns the sample timestamp in the given zone.
func (s ForecastSample) Time(loc *time.Location) time.Time {
	return time.Unix(s.Timestamp, 0).In(loc)
}

// ForecastSeries is the ordered 5-day / 3-hour forecast for a location.
type ForecastSeries struct {
	Lat     float64          `json:"lat"`
	Lng     float64          `json:"lng"`
	Samples []ForecastSample `json:"samples"`
}

// DailySummary is the per-calendar-date reduction of a ForecastSeries.
// Derived, never stored.
type DailySummary struct {
	Date              string  `json:"date"` // YYYY-MM-DD in the summarizing zone
	MinTemp           float64 `json:"minTemp"`
	MaxTemp           float64 `json:"maxTemp"`
	DominantCondition string  `json:"dominantCondition"`
	Description       string  `json:"description"`
	Icon              string  `json:"icon"`
}

// GeocodeCandidate is a single place-name search result.
type GeocodeCandidate struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}
