package weather

import (
	"fmt"
	"math"
)

// CelsiusToFahrenheit converts a temperature in Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a temperature in Fahrenheit to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// FormatTemperature renders a metric temperature in the requested unit,
// rounded to the nearest degree, e.g. "18°C".
func FormatTemperature(celsius float64, unit TemperatureUnit) string {
	if unit == UnitFahrenheit {
		return fmt.Sprintf("%d°F", int(math.Round(CelsiusToFahrenheit(celsius))))
	}
	return fmt.Sprintf("%d°C", int(math.Round(celsius)))
}

// IconURL builds the image URL for an OpenWeatherMap icon code.
func IconURL(icon string) string {
	return "https://openweathermap.org/img/wn/" + icon + "@2x.png"
}

var windDirections = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirection maps wind degrees to a 16-point cardinal direction.
func WindDirection(degrees float64) string {
	idx := int(math.Round(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return windDirections[idx]
}

// WeatherTip returns a short advisory line for an OpenWeatherMap condition
// id and a metric temperature.
func WeatherTip(conditionID int, tempC float64) string {
	switch {
	case conditionID >= 200 && conditionID < 300:
		return "Thunderstorms in the area. Stay indoors and avoid open areas."
	case conditionID >= 300 && conditionID < 400, conditionID >= 500 && conditionID < 600:
		return "Don't forget your umbrella today!"
	case conditionID >= 600 && conditionID < 700:
		return "Snowy conditions. Drive carefully and dress warmly."
	case conditionID >= 700 && conditionID < 800:
		return "Reduced visibility. Take care when driving."
	case conditionID == 800:
		switch {
		case tempC > 30:
			return "It's hot out there! Stay hydrated and use sunscreen."
		case tempC > 20:
			return "Beautiful day! Perfect for outdoor activities."
		case tempC > 10:
			return "Pleasant weather. A light jacket might be comfortable."
		default:
			return "Clear but cold. Bundle up before heading out!"
		}
	case conditionID > 800:
		return "Cloudy conditions today. You might want to have a jacket handy."
	}
	return "Check the forecast for your planned activities today."
}
