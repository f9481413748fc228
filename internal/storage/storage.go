// Package storage provides the synchronous key-value string store the
// persisted stores write their snapshots through. The interface is small on
// purpose so tests can swap in an in-memory fake.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no value has been stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a synchronous key-value string store.
type KV interface {
	Load(key string) (string, error)
	Save(key, value string) error
}

// FileStore persists each key as a JSON file inside a state directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(key string) (string, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(b), nil
}

// Save writes through a temp file and renames so a crash mid-write cannot
// leave a truncated snapshot behind.
func (s *FileStore) Save(key, value string) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

// MemStore is an in-memory KV used in tests.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

func (s *MemStore) Load(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
