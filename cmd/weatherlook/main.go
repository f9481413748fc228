package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "weatherlook/internal/api/http"
	"weatherlook/internal/config"
	"weatherlook/internal/geoloc"
	"weatherlook/internal/owm"
	"weatherlook/internal/scheduler"
	"weatherlook/internal/storage"
	"weatherlook/internal/store"
	"weatherlook/internal/weather"
	"weatherlook/web"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Persisted stores over file-backed key-value storage.
	kv, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		log.Fatalf("failed to open state dir: %v", err)
	}
	locations := store.NewLocationStore(kv)
	favorites := store.NewFavoritesStore(kv)

	// Upstream weather/geocoding client.
	client := owm.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.WeatherBaseURL)

	// Core service orchestrating stores and fetchers.
	service := weather.NewService(locations, favorites, client, weather.TTLConfig{
		Weather:  cfg.WeatherTTL,
		Forecast: cfg.ForecastTTL,
		Geocode:  cfg.GeocodeTTL,
	})

	// Geolocation: ip-api provider, optional Google reverse geocoding.
	var resolver geoloc.NameResolver
	if cfg.GeocoderAPIKey != "" {
		resolver = geoloc.NewGoogleResolver(cfg.GeocoderAPIKey)
	}
	locator := geoloc.New(
		geoloc.NewIPAPIProvider(httpClient, cfg.GeoIPURL),
		locations,
		resolver,
		cfg.GeolocationTimeout,
	)

	// Try to geolocate at startup if nothing is selected yet; any failure
	// is logged and the app proceeds with no selection.
	if locations.Selected() == nil {
		if _, err := locator.Locate(context.Background()); err != nil {
			log.Printf("INFO: startup geolocation failed, continuing without a selection: %v", err)
		}
	}

	// Background cache refresh.
	sched := scheduler.New(service, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherlook",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherlook",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, locator, cfg)

	// Embedded single-page view.
	app.Use("/", filesystem.New(filesystem.Config{
		Root: http.FS(web.FS),
	}))

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
