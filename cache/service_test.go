package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// mockCacheService returns a canned GetOrFetch result and records the options it saw
type mockCacheService struct {
	result Result
	err    error
	force  bool
}

func (m *mockCacheService) Get(ctx context.Context, key Key, ttl time.Duration) (json.RawMessage, bool) {
	return m.result.Cached, m.result.Cached != nil
}

func (m *mockCacheService) Set(ctx context.Context, key Key, data any, ttl time.Duration) error {
	return nil
}

func (m *mockCacheService) Remove(ctx context.Context, key Key) error { return nil }

func (m *mockCacheService) Clear(ctx context.Context, pattern *Pattern) (int, error) { return 0, nil }

func (m *mockCacheService) Invalidate(ctx context.Context, pattern Pattern) (int, error) {
	return 0, nil
}

func (m *mockCacheService) GetOrFetch(ctx context.Context, key Key, ttl time.Duration, fetchFn RawFetchFn, opts ...Option) (Result, error) {
	o := applyOptions(opts)
	m.force = o.forceRefresh
	if o.onCacheHit != nil || o.onCacheMiss != nil {
		return Result{}, errors.New("hooks must stay in Wrap")
	}
	return m.result, m.err
}

func (m *mockCacheService) Stats(ctx context.Context) (Stats, error) { return Stats{}, nil }

func TestWrap_NilInterfaceResult(t *testing.T) {
	mock := &mockCacheService{result: Result{Source: SourceFetch, Fetched: nil}}

	type SomeInterface interface {
		DoSomething() string
	}

	result, err := Wrap[SomeInterface](context.Background(), mock, PostKey("1"), time.Minute, func(ctx context.Context) (SomeInterface, error) {
		return nil, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}

	if result != nil {
		t.Errorf("expected nil result but got: %v", result)
	}
}

func TestWrap_NilPointerResult(t *testing.T) {
	mock := &mockCacheService{result: Result{Source: SourceFetch, Fetched: (*string)(nil)}}

	result, err := Wrap[*string](context.Background(), mock, PostKey("1"), time.Minute, func(ctx context.Context) (*string, error) {
		return nil, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}

	if result != nil {
		t.Errorf("expected nil pointer but got: %v", result)
	}
}

func TestWrap_TypeAssertionFailure(t *testing.T) {
	mock := &mockCacheService{result: Result{Source: SourceFetch, Fetched: "wrong-type"}}

	result, err := Wrap[int](context.Background(), mock, PostKey("1"), time.Minute, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if !errors.Is(err, ErrInvalidResultType) {
		t.Errorf("expected ErrInvalidResultType but got: %v", err)
	}

	if result != 0 {
		t.Errorf("expected zero value (0) but got: %v", result)
	}
}

func TestWrap_DecodesCachedPayload(t *testing.T) {
	type post struct {
		ID    string `json:"id"`
		Likes int    `json:"likes"`
	}

	for _, source := range []Source{SourceCache, SourceStale} {
		mock := &mockCacheService{result: Result{Source: source, Cached: json.RawMessage(`{"id":"p1","likes":3}`)}}

		var hits int
		got, err := Wrap(context.Background(), mock, PostKey("p1"), PostsTTL,
			func(ctx context.Context) (post, error) { return post{}, errors.New("not called") },
			WithOnCacheHit(func(data any) {
				if _, ok := data.(post); !ok {
					t.Errorf("hook expected typed value, got %T", data)
				}
				hits++
			}),
		)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", source, err)
		}
		if got.ID != "p1" || got.Likes != 3 {
			t.Errorf("%s: unexpected value %+v", source, got)
		}

		wantHits := 0
		if source == SourceCache {
			wantHits = 1
		}
		if hits != wantHits {
			t.Errorf("%s: expected %d hook calls, got %d", source, wantHits, hits)
		}
	}
}

func TestWrap_CorruptPayload(t *testing.T) {
	mock := &mockCacheService{result: Result{Source: SourceCache, Cached: json.RawMessage(`"text"`)}}

	_, err := Wrap(context.Background(), mock, PostKey("p1"), PostsTTL, func(ctx context.Context) (int, error) {
		return 0, nil
	})
	if err == nil {
		t.Error("expected decode error")
	}
}

func TestWrap_PassesForceRefreshAndErrors(t *testing.T) {
	offline := errors.New("offline")
	mock := &mockCacheService{err: offline}

	var misses int
	_, err := Wrap(context.Background(), mock, PostKey("p1"), PostsTTL,
		func(ctx context.Context) (string, error) { return "", offline },
		WithForceRefresh(true),
		WithOnCacheMiss(func(any) { misses++ }),
	)

	if !errors.Is(err, offline) {
		t.Errorf("expected fetch error, got %v", err)
	}
	if !mock.force {
		t.Error("expected force refresh to reach the service")
	}
	if misses != 0 {
		t.Error("miss hook must not run on failure")
	}
}

func TestWrap_NilFetchFn(t *testing.T) {
	_, err := Wrap[string](context.Background(), &mockCacheService{}, PostKey("p1"), PostsTTL, nil)
	if !errors.Is(err, ErrNilFetchFn) {
		t.Errorf("expected ErrNilFetchFn, got %v", err)
	}
}
