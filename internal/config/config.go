package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	// Optional Google key for reverse geocoding a geolocated fix.
	GeocoderAPIKey string

	// Base URL overrides, mainly for tests; empty means production.
	WeatherBaseURL string
	GeoIPURL       string

	// Staleness windows for the three fetchers.
	WeatherTTL  time.Duration
	ForecastTTL time.Duration
	GeocodeTTL  time.Duration

	// GeolocationTimeout bounds the one-shot position lookup.
	GeolocationTimeout time.Duration

	// RefreshInterval controls the background cache re-warm job.
	RefreshInterval time.Duration

	HTTPTimeout time.Duration

	// StateDir holds the persisted store snapshots.
	StateDir string

	// Default map viewport for the view.
	MapCenterLat float64
	MapCenterLng float64
	MapZoom      int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	cfg.WeatherBaseURL = os.Getenv("WEATHER_BASE_URL")
	cfg.GeoIPURL = os.Getenv("GEOIP_URL")

	var err error
	if cfg.WeatherTTL, err = getenvDuration("WEATHER_CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	if cfg.ForecastTTL, err = getenvDuration("FORECAST_CACHE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.GeocodeTTL, err = getenvDuration("GEOCODE_CACHE_TTL", "60m"); err != nil {
		return nil, err
	}
	if cfg.GeolocationTimeout, err = getenvDuration("GEOLOCATION_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.StateDir = getenvDefault("STATE_DIR", "data")
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.MapZoom = getenvInt("MAP_ZOOM", 10)

	center := getenvDefault("MAP_CENTER", "51.505,-0.09")
	if cfg.MapCenterLat, cfg.MapCenterLng, err = parseCenter(center); err != nil {
		return nil, fmt.Errorf("invalid MAP_CENTER: %w", err)
	}

	return cfg, nil
}

func parseCenter(s string) (lat, lng float64, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want lat,lng; got %q", s)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, err
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	return lat, lng, err
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
