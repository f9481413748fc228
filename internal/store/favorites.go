package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"weatherlook/internal/storage"
	"weatherlook/internal/weather"
)

// FavoritesStoreKey is the fixed storage key for the favorites snapshot.
const FavoritesStoreKey = "weather-favorites"

// FavoritesStore is the insertion-ordered, id-deduplicated collection of
// saved locations.
type FavoritesStore struct {
	mu        sync.RWMutex
	kv        storage.KV
	favorites []weather.FavoriteLocation
}

// NewFavoritesStore loads the persisted collection; corrupt or missing
// data resets to an empty collection.
func NewFavoritesStore(kv storage.KV) *FavoritesStore {
	s := &FavoritesStore{kv: kv}

	raw, err := kv.Load(FavoritesStoreKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("favorites store: load failed, starting empty: %v", err)
		}
		return s
	}

	var favs []weather.FavoriteLocation
	if err := json.Unmarshal([]byte(raw), &favs); err != nil {
		log.Printf("favorites store: corrupt snapshot, starting empty")
		return s
	}
	s.favorites = favs
	return s
}

// List returns the favorites in insertion order.
func (s *FavoritesStore) List() []weather.FavoriteLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]weather.FavoriteLocation, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// Add appends fav unless its ID is already present. Idempotent.
func (s *FavoritesStore) Add(fav weather.FavoriteLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.ID == fav.ID {
			return
		}
	}
	s.favorites = append(s.favorites, fav)
	s.persistLocked()
}

// Remove deletes the favorite with the given id. No-op when absent.
func (s *FavoritesStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.favorites {
		if f.ID == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// IsFavorite reports whether a favorite with the given id exists.
func (s *FavoritesStore) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.favorites {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (s *FavoritesStore) persistLocked() {
	b, err := json.Marshal(s.favorites)
	if err != nil {
		log.Printf("favorites store: marshal failed: %v", err)
		return
	}
	if err := s.kv.Save(FavoritesStoreKey, string(b)); err != nil {
		log.Printf("favorites store: persist failed: %v", err)
	}
}
