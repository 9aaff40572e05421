package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-kvcache/cache"
)

// RecordingStore wraps an in-memory store, counts calls and can be told to
// fail specific operations.
type RecordingStore struct {
	inner cache.Store

	mu             sync.Mutex
	calls          map[string]int
	removed        []string
	failGet        error
	failSet        error
	failRemove     error
	failMulti      error
	failKeys       error
	failRemoveKeys map[string]error
}

func NewRecordingStore() *RecordingStore {
	return &RecordingStore{
		inner:          cache.NewMemoryStore(),
		calls:          map[string]int{},
		failRemoveKeys: map[string]error{},
	}
}

// FailGet makes GetItem return err. A nil err clears the failure.
func (s *RecordingStore) FailGet(err error) { s.set(func() { s.failGet = err }) }

func (s *RecordingStore) FailSet(err error) { s.set(func() { s.failSet = err }) }

func (s *RecordingStore) FailRemove(err error) { s.set(func() { s.failRemove = err }) }

func (s *RecordingStore) FailMultiRemove(err error) { s.set(func() { s.failMulti = err }) }

func (s *RecordingStore) FailGetAllKeys(err error) { s.set(func() { s.failKeys = err }) }

// FailRemoveKey makes RemoveItem fail for key only.
func (s *RecordingStore) FailRemoveKey(key string, err error) {
	s.set(func() { s.failRemoveKeys[key] = err })
}

func (s *RecordingStore) set(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *RecordingStore) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}

// Calls reports how many times op (GetItem, SetItem, ...) ran.
func (s *RecordingStore) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Removed lists every key removed so far, in order.
func (s *RecordingStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

// Raw reads the stored value without recording a call.
func (s *RecordingStore) Raw(key string) (string, bool) {
	value, ok, _ := s.inner.GetItem(context.Background(), key)
	return value, ok
}

// Put writes a raw value without recording a call.
func (s *RecordingStore) Put(key, value string) {
	_ = s.inner.SetItem(context.Background(), key, value)
}

func (s *RecordingStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.record("GetItem")
	s.mu.Lock()
	err := s.failGet
	s.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return s.inner.GetItem(ctx, key)
}

func (s *RecordingStore) SetItem(ctx context.Context, key, value string) error {
	s.record("SetItem")
	s.mu.Lock()
	err := s.failSet
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.inner.SetItem(ctx, key, value)
}

func (s *RecordingStore) RemoveItem(ctx context.Context, key string) error {
	s.record("RemoveItem")
	s.mu.Lock()
	err := s.failRemove
	if keyErr, ok := s.failRemoveKeys[key]; ok {
		err = keyErr
	}
	if err == nil {
		s.removed = append(s.removed, key)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.inner.RemoveItem(ctx, key)
}

func (s *RecordingStore) MultiRemove(ctx context.Context, keys []string) error {
	s.record("MultiRemove")
	s.mu.Lock()
	err := s.failMulti
	if err == nil {
		s.removed = append(s.removed, keys...)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.inner.MultiRemove(ctx, keys)
}

func (s *RecordingStore) GetAllKeys(ctx context.Context) ([]string, error) {
	s.record("GetAllKeys")
	s.mu.Lock()
	err := s.failKeys
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.inner.GetAllKeys(ctx)
}
