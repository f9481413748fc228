package geoloc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultIPAPIURL = "http://ip-api.com/json"

// IPAPIProvider asks an ip-api style endpoint for the host's coordinates.
// Every call is a live request; nothing is cached, so each Locate gets a
// fresh fix.
type IPAPIProvider struct {
	baseURL string
	client  *http.Client
}

// NewIPAPIProvider creates the provider. Empty baseURL means the public
// ip-api.com endpoint.
func NewIPAPIProvider(client *http.Client, baseURL string) *IPAPIProvider {
	if baseURL == "" {
		baseURL = defaultIPAPIURL
	}
	return &IPAPIProvider{baseURL: baseURL, client: client}
}

// CurrentPosition implements PositionProvider.
func (p *IPAPIProvider) CurrentPosition(ctx context.Context) (float64, float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?fields=status,message,lat,lon", nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return 0, 0, ErrPermissionDenied
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%w: status %d", ErrPositionUnavailable, resp.StatusCode)
	}

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, err
	}
	if payload.Status != "success" {
		return 0, 0, fmt.Errorf("%w: %s", ErrPositionUnavailable, payload.Message)
	}

	return payload.Lat, payload.Lon, nil
}
