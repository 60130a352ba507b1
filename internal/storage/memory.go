package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps objects in memory. Used in tests and local development
// where no GCS credentials are available.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string][]byte{}}
}

func (s *MemoryStore) Upload(_ context.Context, category BucketCategory, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[string(category)+"/"+key] = cp
	return nil
}

func (s *MemoryStore) PublicURL(category BucketCategory, key string) string {
	return fmt.Sprintf("mem://%s/%s", category, key)
}

// Get returns the stored object and whether it exists.
func (s *MemoryStore) Get(category BucketCategory, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[string(category)+"/"+key]
	return data, ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
