package testsupport

import (
	"context"
	"sync"
)

// FetchCounter hands out a fetch function that returns a configurable value
// or error and counts its invocations.
type FetchCounter[T any] struct {
	mu    sync.Mutex
	value T
	err   error
	calls int
}

func NewFetchCounter[T any](value T) *FetchCounter[T] {
	return &FetchCounter[T]{value: value}
}

// Return changes the value handed out and clears any error.
func (f *FetchCounter[T]) Return(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
	f.err = nil
}

// Fail makes following calls return err.
func (f *FetchCounter[T]) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FetchCounter[T]) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Fetch matches cache.FetchFn[T].
func (f *FetchCounter[T]) Fetch(context.Context) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		var zero T
		return zero, f.err
	}
	return f.value, nil
}

// Raw matches cache.RawFetchFn.
func (f *FetchCounter[T]) Raw(ctx context.Context) (any, error) {
	return f.Fetch(ctx)
}
