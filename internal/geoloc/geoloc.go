// Package geoloc wraps a one-shot position lookup into a request/response
// with explicit failure kinds. No failure here is fatal: the caller
// proceeds without a selected location.
package geoloc

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"weatherlook/internal/weather"
)

// Failure kinds, each mapped to a human-readable message.
var (
	ErrUnsupported         = errors.New("geolocation is not supported on this platform")
	ErrPermissionDenied    = errors.New("user denied the request for geolocation")
	ErrPositionUnavailable = errors.New("location information is unavailable")
	ErrTimeout             = errors.New("the request to get user location timed out")
)

// PlaceholderName is the selection name used until a weather fetch
// resolves the canonical place name.
const PlaceholderName = "Current Location"

// PositionProvider is the platform capability: one fresh fix per call,
// never a cached one.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (lat, lng float64, err error)
}

// SelectionStore is the part of the location store the adapter writes to.
type SelectionStore interface {
	SetSelected(*weather.Location)
}

// NameResolver optionally turns a fix into a place name right away.
type NameResolver interface {
	ResolveName(lat, lng float64) (string, error)
}

// Adapter runs the position lookup with a fixed timeout and writes the
// resulting coordinates into the selection store.
type Adapter struct {
	mu       sync.Mutex
	provider PositionProvider
	store    SelectionStore
	resolver NameResolver
	timeout  time.Duration
}

// New creates an Adapter. provider may be nil, in which case every Locate
// fails with ErrUnsupported. resolver may be nil.
func New(provider PositionProvider, store SelectionStore, resolver NameResolver, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Adapter{
		provider: provider,
		store:    store,
		resolver: resolver,
		timeout:  timeout,
	}
}

// Locate requests a fresh fix, bounded by the adapter timeout, and on
// success selects it with a placeholder name (or a reverse-geocoded name
// when a resolver is configured). Calls are serialized so at most one
// lookup is in flight at a time.
func (a *Adapter) Locate(ctx context.Context) (weather.Location, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.provider == nil {
		return weather.Location{}, ErrUnsupported
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	lat, lng, err := a.provider.CurrentPosition(ctx)
	if err != nil {
		return weather.Location{}, mapError(ctx, err)
	}

	loc := weather.Location{Lat: lat, Lng: lng, Name: PlaceholderName}
	if a.resolver != nil {
		if name, rerr := a.resolver.ResolveName(lat, lng); rerr == nil && name != "" {
			loc.Name = name
		} else if rerr != nil {
			log.Printf("geolocation: reverse geocode failed, keeping placeholder: %v", rerr)
		}
	}

	a.store.SetSelected(&loc)
	return loc, nil
}

func mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrPositionUnavailable),
		errors.Is(err, ErrUnsupported),
		errors.Is(err, ErrTimeout):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	default:
		return errors.Join(ErrPositionUnavailable, err)
	}
}
