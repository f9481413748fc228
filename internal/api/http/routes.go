package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weatherlook/internal/config"
	"weatherlook/internal/geoloc"
	"weatherlook/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, locator *geoloc.Adapter, cfg *config.AppConfig) {
	v1 := app.Group("/api/v1")

	v1.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"mapCenter": fiber.Map{"lat": cfg.MapCenterLat, "lng": cfg.MapCenterLng},
			"mapZoom":   cfg.MapZoom,
			"unit":      service.Unit(),
		})
	})

	v1.Get("/location", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"selected": service.Selected(),
			"unit":     service.Unit(),
		})
	})

	v1.Put("/location", func(c *fiber.Ctx) error {
		var body locationBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		name := body.Name
		if name == "" {
			name = "Selected Location"
		}
		loc := weather.Location{Lat: *body.Lat, Lng: *body.Lng, Name: name}
		service.Select(&loc)
		return c.JSON(loc)
	})

	// Closing the panel clears the selection.
	v1.Delete("/location", func(c *fiber.Ctx) error {
		service.Select(nil)
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Put("/unit", func(c *fiber.Ctx) error {
		var body struct {
			Unit weather.TemperatureUnit `json:"unit"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !body.Unit.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unit must be celsius or fahrenheit")
		}
		service.SetUnit(body.Unit)
		return c.JSON(fiber.Map{"unit": body.Unit})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snap, err := service.Current(c.UserContext())
		if err != nil {
			if errors.Is(err, weather.ErrMissingParameters) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}

		unit := service.Unit()
		return c.JSON(fiber.Map{
			"snapshot":      snap,
			"displayTemp":   weather.FormatTemperature(snap.Temperature, unit),
			"windDirection": weather.WindDirection(float64(snap.WindDeg)),
			"tip":           weather.WeatherTip(snap.ConditionID, snap.Temperature),
			"iconUrl":       weather.IconURL(snap.ConditionIcon),
			"isFavorite":    service.IsFavorite(weather.FavoriteID(snap.Lat, snap.Lng)),
		})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		series, daily, err := service.Forecast(c.UserContext())
		if err != nil {
			if errors.Is(err, weather.ErrMissingParameters) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch forecast data")
		}
		return c.JSON(fiber.Map{
			"samples": series.Samples,
			"daily":   daily,
		})
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		candidates, err := service.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to search locations")
		}
		return c.JSON(candidates)
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(service.Favorites())
	})

	v1.Post("/favorites/toggle", func(c *fiber.Ctx) error {
		fav, err := service.ToggleFavorite(c.UserContext())
		if err != nil {
			if errors.Is(err, weather.ErrMissingParameters) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to resolve location for favorite")
		}
		return c.JSON(fiber.Map{"favorite": fav})
	})

	v1.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		service.RemoveFavorite(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/geolocate", func(c *fiber.Ctx) error {
		loc, err := locator.Locate(c.UserContext())
		if err != nil {
			return fiber.NewError(geolocStatus(err), err.Error())
		}
		return c.JSON(loc)
	})
}

// locationBody uses pointer coordinates so 0 is distinguishable from
// absent; validator dereferences for the range checks.
type locationBody struct {
	Lat  *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng  *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Name string   `json:"name"`
}

func geolocStatus(err error) int {
	switch {
	case errors.Is(err, geoloc.ErrUnsupported):
		return fiber.StatusNotImplemented
	case errors.Is(err, geoloc.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, geoloc.ErrTimeout):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}
