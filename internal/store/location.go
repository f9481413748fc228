// Package store holds the two persisted state containers: the current
// selection (plus unit preference) and the favorites list. Every mutation
// writes the full snapshot back through the injected storage.KV; unreadable
// stored data degrades to defaults rather than failing the caller.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"weatherlook/internal/storage"
	"weatherlook/internal/weather"
)

// LocationStoreKey is the fixed storage key for the selection snapshot.
const LocationStoreKey = "weather-store"

type locationState struct {
	Selected *weather.Location       `json:"selected"`
	Unit     weather.TemperatureUnit `json:"unit"`
}

// LocationStore is the single source of truth for the currently selected
// location and the temperature-unit preference.
type LocationStore struct {
	mu    sync.RWMutex
	kv    storage.KV
	state locationState
}

// NewLocationStore loads the persisted snapshot, falling back to
// {selected: nil, unit: celsius} when it is absent or unreadable.
func NewLocationStore(kv storage.KV) *LocationStore {
	s := &LocationStore{
		kv:    kv,
		state: locationState{Unit: weather.UnitCelsius},
	}

	raw, err := kv.Load(LocationStoreKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("location store: load failed, using defaults: %v", err)
		}
		return s
	}

	var st locationState
	if err := json.Unmarshal([]byte(raw), &st); err != nil || !st.Unit.Valid() {
		log.Printf("location store: corrupt snapshot, using defaults")
		return s
	}
	s.state = st
	return s
}

// Selected returns the current selection, or nil when none.
func (s *LocationStore) Selected() *weather.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Selected == nil {
		return nil
	}
	loc := *s.state.Selected
	return &loc
}

// SetSelected replaces the selection (nil clears it) and persists.
func (s *LocationStore) SetSelected(loc *weather.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc == nil {
		s.state.Selected = nil
	} else {
		cp := *loc
		s.state.Selected = &cp
	}
	s.persistLocked()
}

// Unit returns the temperature-unit preference.
func (s *LocationStore) Unit() weather.TemperatureUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Unit
}

// SetUnit updates the preference and persists.
func (s *LocationStore) SetUnit(unit weather.TemperatureUnit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Unit = unit
	s.persistLocked()
}

func (s *LocationStore) persistLocked() {
	b, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("location store: marshal failed: %v", err)
		return
	}
	if err := s.kv.Save(LocationStoreKey, string(b)); err != nil {
		log.Printf("location store: persist failed: %v", err)
	}
}
