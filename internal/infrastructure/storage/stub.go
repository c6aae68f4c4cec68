package storage

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/photo"
)

// StubObjectStorage keeps objects in memory.
// Use this for development and tests when no S3-compatible backend is available.
type StubObjectStorage struct {
	// BaseURL prefixes public URLs.
	// Defaults to "https://storage.example.com" if not set
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubObjectStorage implements photo.ObjectStore
var _ photo.ObjectStore = (*StubObjectStorage)(nil)

// Put reads body fully and keeps it under key
func (s *StubObjectStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.objects[key] = b
	s.mu.Unlock()
	return nil
}

// List returns the stored keys under prefix in lexical order
func (s *StubObjectStorage) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := []string{}
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// PublicURL returns BaseURL/key
func (s *StubObjectStorage) PublicURL(key string) string {
	return s.BaseURL + "/" + key
}
