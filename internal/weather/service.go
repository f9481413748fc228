package weather

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"weatherlook/internal/fetch"
)

// MinSearchLength is the geocode query guard: shorter queries resolve to
// an empty result list without a network call.
const MinSearchLength = 3

// ErrMissingParameters is returned when a lookup runs without its
// precondition (no selected coordinates).
var ErrMissingParameters = errors.New("no location selected")

// API abstracts the upstream weather/geocoding source.
type API interface {
	CurrentWeather(ctx context.Context, lat, lng float64) (WeatherSnapshot, error)
	Forecast(ctx context.Context, lat, lng float64) (ForecastSeries, error)
	Geocode(ctx context.Context, query string, limit int) ([]GeocodeCandidate, error)
}

// SelectionStore is the persisted selection + unit preference contract.
type SelectionStore interface {
	Selected() *Location
	SetSelected(*Location)
	Unit() TemperatureUnit
	SetUnit(TemperatureUnit)
}

// FavoriteStore is the persisted favorites contract.
type FavoriteStore interface {
	List() []FavoriteLocation
	Add(FavoriteLocation)
	Remove(id string)
	IsFavorite(id string) bool
}

// TTLConfig carries the staleness windows for the three fetchers.
type TTLConfig struct {
	Weather  time.Duration
	Forecast time.Duration
	Geocode  time.Duration
}

// Service keeps the selected location, the favorites and the three keyed
// fetchers consistent: every weather/forecast key derives from the
// selection, and resolved place names are written back only while their
// coordinates are still the selected ones.
type Service struct {
	locations SelectionStore
	favorites FavoriteStore
	api       API

	current  *fetch.Fetcher[WeatherSnapshot]
	forecast *fetch.Fetcher[ForecastSeries]
	geocode  *fetch.Fetcher[[]GeocodeCandidate]

	tz *time.Location
}

// NewService wires the stores and the upstream API into a Service.
func NewService(locations SelectionStore, favorites FavoriteStore, api API, ttl TTLConfig) *Service {
	s := &Service{
		locations: locations,
		favorites: favorites,
		api:       api,
		tz:        time.Local,
	}
	s.current = fetch.New(ttl.Weather, func(ctx context.Context, key string) (WeatherSnapshot, error) {
		lat, lng, err := ParseCoordKey(key)
		if err != nil {
			return WeatherSnapshot{}, err
		}
		return s.api.CurrentWeather(ctx, lat, lng)
	})
	s.forecast = fetch.New(ttl.Forecast, func(ctx context.Context, key string) (ForecastSeries, error) {
		lat, lng, err := ParseCoordKey(key)
		if err != nil {
			return ForecastSeries{}, err
		}
		return s.api.Forecast(ctx, lat, lng)
	})
	s.geocode = fetch.New(ttl.Geocode, func(ctx context.Context, key string) ([]GeocodeCandidate, error) {
		return s.api.Geocode(ctx, key, 5)
	})
	return s
}

// ParseCoordKey is the inverse of CoordKey.
func ParseCoordKey(key string) (lat, lng float64, err error) {
	parts := strings.SplitN(key, ",", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New("malformed coordinate key: " + key)
	}
	lat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err = strconv.ParseFloat(parts[1], 64)
	return lat, lng, err
}

// Select replaces the current selection; nil clears it (panel closed).
func (s *Service) Select(loc *Location) {
	s.locations.SetSelected(loc)
}

// Selected returns the current selection, or nil.
func (s *Service) Selected() *Location {
	return s.locations.Selected()
}

// Unit returns the temperature-unit preference.
func (s *Service) Unit() TemperatureUnit {
	return s.locations.Unit()
}

// SetUnit updates the temperature-unit preference.
func (s *Service) SetUnit(unit TemperatureUnit) {
	s.locations.SetUnit(unit)
}

// Current fetches (or serves cached) current conditions for the selected
// location. On success the canonical place name is written back into the
// selection, unless the selection has moved on in the meantime.
func (s *Service) Current(ctx context.Context) (WeatherSnapshot, error) {
	sel := s.locations.Selected()
	if sel == nil {
		return WeatherSnapshot{}, ErrMissingParameters
	}

	key := sel.Key()
	snap, err := s.current.Get(ctx, key)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	s.resolveName(key, snap)
	return snap, nil
}

// resolveName overwrites a placeholder selection name with the name the
// weather API resolved, but only while those coordinates are still
// selected. A superseded response must never clobber a newer selection.
func (s *Service) resolveName(key string, snap WeatherSnapshot) {
	if snap.Name == "" {
		return
	}
	sel := s.locations.Selected()
	if sel == nil || sel.Key() != key || sel.Name == snap.Name {
		return
	}
	s.locations.SetSelected(&Location{Lat: sel.Lat, Lng: sel.Lng, Name: snap.Name})
}

// Forecast fetches the 3-hour series for the selected location and its
// per-day reduction.
func (s *Service) Forecast(ctx context.Context) (ForecastSeries, []DailySummary, error) {
	sel := s.locations.Selected()
	if sel == nil {
		return ForecastSeries{}, nil, ErrMissingParameters
	}

	series, err := s.forecast.Get(ctx, sel.Key())
	if err != nil {
		return ForecastSeries{}, nil, err
	}
	return series, Summarize(series, s.tz), nil
}

// Search geocodes a free-text query. Queries under MinSearchLength runes
// resolve immediately to an empty list without a network call.
func (s *Service) Search(ctx context.Context, query string) ([]GeocodeCandidate, error) {
	if utf8.RuneCountInString(query) < MinSearchLength {
		return []GeocodeCandidate{}, nil
	}
	return s.geocode.Get(ctx, query)
}

// Favorites returns the saved locations in insertion order.
func (s *Service) Favorites() []FavoriteLocation {
	return s.favorites.List()
}

// RemoveFavorite removes a favorite by id. No-op when absent.
func (s *Service) RemoveFavorite(id string) {
	s.favorites.Remove(id)
}

// IsFavorite reports whether the given id is pinned.
func (s *Service) IsFavorite(id string) bool {
	return s.favorites.IsFavorite(id)
}

// ToggleFavorite pins or unpins the selected location, built from the
// loaded weather snapshot so the stored name and country are canonical.
// It returns whether the location is a favorite afterwards.
func (s *Service) ToggleFavorite(ctx context.Context) (bool, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return false, err
	}

	id := FavoriteID(snap.Lat, snap.Lng)
	if s.favorites.IsFavorite(id) {
		s.favorites.Remove(id)
		return false, nil
	}
	s.favorites.Add(FavoriteLocation{
		ID:      id,
		Name:    snap.Name,
		Lat:     snap.Lat,
		Lng:     snap.Lng,
		Country: snap.Country,
	})
	return true, nil
}

// CurrentState exposes the selected location's value/loading/error state
// without triggering a fetch.
func (s *Service) CurrentState() fetch.Result[WeatherSnapshot] {
	sel := s.locations.Selected()
	if sel == nil {
		return fetch.Result[WeatherSnapshot]{}
	}
	return s.current.State(sel.Key())
}

// ForecastState is CurrentState for the forecast fetcher.
func (s *Service) ForecastState() fetch.Result[ForecastSeries] {
	sel := s.locations.Selected()
	if sel == nil {
		return fetch.Result[ForecastSeries]{}
	}
	return s.forecast.State(sel.Key())
}

// Refresh invalidates and re-fetches current conditions for the selected
// location and every favorite. Used by the background scheduler; failures
// are logged and skipped.
func (s *Service) Refresh(ctx context.Context) {
	keys := make([]string, 0, 8)
	if sel := s.locations.Selected(); sel != nil {
		keys = append(keys, sel.Key())
	}
	for _, fav := range s.favorites.List() {
		keys = append(keys, CoordKey(fav.Lat, fav.Lng))
	}

	for _, key := range keys {
		s.current.Invalidate(key)
		if _, err := s.current.Get(ctx, key); err != nil {
			log.Printf("refresh: current weather fetch failed for %s: %v", key, err)
		}
	}
}
