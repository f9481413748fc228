// Package owm is the OpenWeatherMap client: current conditions, the
// 5-day / 3-hour forecast and direct geocoding, all with units=metric.
package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weatherlook/internal/weather"
)

// ErrMissingAPIKey is returned when no API key is configured. It surfaces
// as a fetch error to the caller, never a crash.
var ErrMissingAPIKey = errors.New("openweathermap api key is not configured")

const defaultBaseURL = "https://api.openweathermap.org"

// Client talks to the OpenWeatherMap HTTP API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client. baseURL is overridable for tests; empty
// means the production endpoint.
func NewClient(client *http.Client, apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	query.Set("appid", c.apiKey)

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func coordQuery(lat, lng float64) url.Values {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lng))
	values.Set("units", "metric")
	return values
}

// CurrentWeather fetches current conditions for a coordinate pair.
func (c *Client) CurrentWeather(ctx context.Context, lat, lng float64) (weather.WeatherSnapshot, error) {
	var payload struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Pressure  int     `json:"pressure"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Visibility int `json:"visibility"`
		Wind       struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Dt  int64 `json:"dt"`
		Sys struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Name string `json:"name"`
	}

	if err := c.get(ctx, "/data/2.5/weather", coordQuery(lat, lng), &payload); err != nil {
		return weather.WeatherSnapshot{}, err
	}

	snap := weather.WeatherSnapshot{
		Name:        payload.Name,
		Country:     payload.Sys.Country,
		Lat:         payload.Coord.Lat,
		Lng:         payload.Coord.Lon,
		Timestamp:   payload.Dt,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		TempMin:     payload.Main.TempMin,
		TempMax:     payload.Main.TempMax,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
		WindDeg:     payload.Wind.Deg,
		Visibility:  payload.Visibility,
		Sunrise:     payload.Sys.Sunrise,
		Sunset:      payload.Sys.Sunset,
	}
	if len(payload.Weather) > 0 {
		snap.ConditionID = payload.Weather[0].ID
		snap.Condition = payload.Weather[0].Main
		snap.Description = payload.Weather[0].Description
		snap.ConditionIcon = payload.Weather[0].Icon
	}
	return snap, nil
}

// Forecast fetches the 5-day / 3-hour forecast for a coordinate pair.
func (c *Client) Forecast(ctx context.Context, lat, lng float64) (weather.ForecastSeries, error) {
	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
		} `json:"list"`
		City struct {
			Coord struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"coord"`
		} `json:"city"`
	}

	if err := c.get(ctx, "/data/2.5/forecast", coordQuery(lat, lng), &payload); err != nil {
		return weather.ForecastSeries{}, err
	}

	series := weather.ForecastSeries{
		Lat:     payload.City.Coord.Lat,
		Lng:     payload.City.Coord.Lon,
		Samples: make([]weather.ForecastSample, 0, len(payload.List)),
	}
	for _, item := range payload.List {
		sample := weather.ForecastSample{
			Timestamp:   item.Dt,
			Temperature: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			sample.Condition = item.Weather[0].Main
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		series.Samples = append(series.Samples, sample)
	}
	return series, nil
}

// Geocode resolves a free-text place query to candidate locations.
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]weather.GeocodeCandidate, error) {
	if limit <= 0 {
		limit = 5
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", limit))

	var payload []struct {
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Country string  `json:"country"`
		State   string  `json:"state"`
	}

	if err := c.get(ctx, "/geo/1.0/direct", values, &payload); err != nil {
		return nil, err
	}

	candidates := make([]weather.GeocodeCandidate, 0, len(payload))
	for _, item := range payload {
		candidates = append(candidates, weather.GeocodeCandidate{
			Name:    item.Name,
			Lat:     item.Lat,
			Lng:     item.Lon,
			Country: item.Country,
			State:   item.State,
		})
	}
	return candidates, nil
}
