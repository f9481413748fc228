package store

import (
	"testing"

	"weatherlook/internal/storage"
	"weatherlook/internal/weather"
)

func fav(lat, lng float64, name string) weather.FavoriteLocation {
	return weather.FavoriteLocation{
		ID:   weather.FavoriteID(lat, lng),
		Name: name,
		Lat:  lat,
		Lng:  lng,
	}
}

func TestFavoritesAddIdempotent(t *testing.T) {
	s := NewFavoritesStore(storage.NewMemStore())

	f := fav(51.505, -0.09, "London")
	s.Add(f)
	s.Add(f)
	// Same coordinates derive the same id regardless of name.
	s.Add(fav(51.505, -0.09, "London, UK"))

	if got := len(s.List()); got != 1 {
		t.Fatalf("expected 1 favorite, got %d", got)
	}
	if !s.IsFavorite(f.ID) {
		t.Fatal("expected IsFavorite true after add")
	}
}

func TestFavoritesRemove(t *testing.T) {
	s := NewFavoritesStore(storage.NewMemStore())

	f := fav(51.505, -0.09, "London")
	s.Add(f)
	s.Remove(f.ID)

	if s.IsFavorite(f.ID) {
		t.Fatal("expected IsFavorite false after remove")
	}
	// Removing again is a no-op.
	s.Remove(f.ID)
	if got := len(s.List()); got != 0 {
		t.Fatalf("expected empty list, got %d entries", got)
	}
}

func TestFavoritesInsertionOrderSurvivesReload(t *testing.T) {
	kv := storage.NewMemStore()

	s := NewFavoritesStore(kv)
	s.Add(fav(1, 1, "A"))
	s.Add(fav(2, 2, "B"))
	s.Add(fav(3, 3, "C"))
	s.Remove(weather.FavoriteID(2, 2))

	reloaded := NewFavoritesStore(kv)
	list := reloaded.List()
	if len(list) != 2 || list[0].Name != "A" || list[1].Name != "C" {
		t.Fatalf("expected [A C] after reload, got %+v", list)
	}
}

func TestFavoritesCorruptResetsEmpty(t *testing.T) {
	kv := storage.NewMemStore()
	kv.Save(FavoritesStoreKey, "[{broken")

	s := NewFavoritesStore(kv)
	if got := len(s.List()); got != 0 {
		t.Fatalf("expected empty collection after corrupt load, got %d", got)
	}
}
