package geoloc

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// GoogleResolver reverse-geocodes a fix into a place name through the
// Google Geocoding API. Optional; only constructed when a key is present.
type GoogleResolver struct{}

// NewGoogleResolver configures the geocoder package with the API key.
func NewGoogleResolver(apiKey string) *GoogleResolver {
	geocoder.ApiKey = apiKey
	return &GoogleResolver{}
}

// ResolveName implements NameResolver.
func (r *GoogleResolver) ResolveName(lat, lng float64) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lng,
	})
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 {
		return "", fmt.Errorf("no address for %f,%f", lat, lng)
	}
	if city := addresses[0].City; city != "" {
		return city, nil
	}
	return addresses[0].FormatAddress(), nil
}
