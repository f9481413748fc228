// Package fetch implements the keyed fetch/cache policy shared by the
// remote data lookups: a per-key staleness window, exactly one retry on
// failure, and at most one in-flight call per key with overlapping callers
// sharing the outcome. Failed outcomes are never cached.
package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Func performs the underlying network call for a key.
type Func[V any] func(ctx context.Context, key string) (V, error)

// Result is a non-blocking snapshot of a key's state for callers that
// render loading/error/success variants.
type Result[V any] struct {
	Value   V
	OK      bool
	Loading bool
	Err     error
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Fetcher caches values per key for a fixed staleness window.
type Fetcher[V any] struct {
	ttl   time.Duration
	fn    Func[V]
	group singleflight.Group

	mu      sync.RWMutex
	values  map[string]entry[V]
	loading map[string]bool
	errs    map[string]error
}

// New creates a Fetcher with the given staleness window.
func New[V any](ttl time.Duration, fn Func[V]) *Fetcher[V] {
	return &Fetcher[V]{
		ttl:     ttl,
		fn:      fn,
		values:  make(map[string]entry[V]),
		loading: make(map[string]bool),
		errs:    make(map[string]error),
	}
}

// Get returns the cached value for key while it is fresh; otherwise it
// performs the fetch (shared across concurrent callers, retried once on
// failure) and caches the result.
func (f *Fetcher[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := f.cached(key); ok {
		return v, nil
	}

	res, err, _ := f.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have filled the
		// cache between our miss and acquiring the flight.
		if v, ok := f.cached(key); ok {
			return v, nil
		}

		f.setLoading(key, true)
		defer f.setLoading(key, false)

		v, err := f.fn(ctx, key)
		if err != nil && ctx.Err() == nil {
			v, err = f.fn(ctx, key)
		}
		if err != nil {
			f.setErr(key, err)
			return nil, err
		}

		f.set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// State reports the key's current value/loading/error without fetching.
func (f *Fetcher[V]) State(key string) Result[V] {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var r Result[V]
	if e, ok := f.values[key]; ok && time.Now().Before(e.expiresAt) {
		r.Value = e.value
		r.OK = true
	}
	r.Loading = f.loading[key]
	r.Err = f.errs[key]
	return r
}

// Invalidate drops the cached value for key so the next Get refetches.
func (f *Fetcher[V]) Invalidate(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	delete(f.errs, key)
}

func (f *Fetcher[V]) cached(key string) (V, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.values[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (f *Fetcher[V]) set(key string, v V) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = entry[V]{value: v, expiresAt: time.Now().Add(f.ttl)}
	delete(f.errs, key)
}

func (f *Fetcher[V]) setErr(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = err
}

func (f *Fetcher[V]) setLoading(key string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v {
		f.loading[key] = true
	} else {
		delete(f.loading, key)
	}
}
