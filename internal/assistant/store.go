package assistant

import (
	"context"
	"sync"
)

// InMemoryBlobStore is a thread-safe BlobStore for development and tests.
// Data is lost on restart.
type InMemoryBlobStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{m: make(map[string]string)}
}

func (s *InMemoryBlobStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[key], nil
}

func (s *InMemoryBlobStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

var _ BlobStore = (*InMemoryBlobStore)(nil)
