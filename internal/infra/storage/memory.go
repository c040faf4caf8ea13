package storage

import (
	"context"
	"sync"

	"swap_go/internal/domain"
)

// MemoryStore is an in-memory KeyValueStore for tests and ephemeral runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailGet/FailSet inject store failures in tests.
	FailGet error
	FailSet error
}

var _ domain.KeyValueStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailGet != nil {
		return nil, false, s.FailGet
	}
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSet != nil {
		return s.FailSet
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	return nil
}
