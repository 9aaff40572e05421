package cacheinfra

import (
	"context"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// MemoryStore is an unbounded in-process store. Items never expire on their
// own; the engine decides freshness.
type MemoryStore struct {
	items *xsync.MapOf[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: xsync.NewMapOf[string, string]()}
}

func (s *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	value, ok := s.items.Load(key)
	return value, ok, nil
}

func (s *MemoryStore) SetItem(_ context.Context, key, value string) error {
	s.items.Store(key, value)
	return nil
}

func (s *MemoryStore) RemoveItem(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

func (s *MemoryStore) MultiRemove(_ context.Context, keys []string) error {
	for _, key := range keys {
		s.items.Delete(key)
	}
	return nil
}

// GetAllKeys returns the keys in lexical order.
func (s *MemoryStore) GetAllKeys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, s.items.Size())
	s.items.Range(func(key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

// Len reports the number of stored items.
func (s *MemoryStore) Len() int { return s.items.Size() }
