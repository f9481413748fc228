package storage

import (
	"errors"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Save("key", `{"a":1}`); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load("key")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("got %q", got)
	}

	// Overwrite replaces the previous value.
	if err := s.Save("key", "v2"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := s.Load("key"); got != "v2" {
		t.Errorf("expected v2, got %q", got)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	if _, err := s.Load("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	s.Save("k", "v")
	if got, _ := s.Load("k"); got != "v" {
		t.Errorf("got %q", got)
	}
}
