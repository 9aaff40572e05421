package cache

import (
	"context"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Store is the persistent string key/value store entries are written to.
// GetItem reports a missing key with found == false and a nil error.
type Store interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys []string) error
	GetAllKeys(ctx context.Context) ([]string, error)
}

// Clock supplies the current time used for entry timestamps and freshness.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FetchFn is the function signature Wrap expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// RawFetchFn is the untyped form used by CacheService.GetOrFetch.
type RawFetchFn func(ctx context.Context) (any, error)

// Source tells where a GetOrFetch result came from.
type Source int

const (
	SourceCache Source = iota
	SourceFetch
	SourceStale
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceFetch:
		return "fetch"
	case SourceStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Result carries either the cached JSON payload (SourceCache, SourceStale)
// or the freshly fetched value (SourceFetch).
type Result struct {
	Source  Source
	Cached  json.RawMessage
	Fetched any
	// Age is the time since the entry was stored. Zero for fetched results.
	Age time.Duration
}

// Stats summarizes the entries currently held in the namespace.
type Stats struct {
	Total   int
	ByClass map[string]int
}

// CacheService exposes the TTL cache operations used by the domain wrappers.
// It is exported so that wrappers can be tested against alternate implementations.
type CacheService interface {
	Get(ctx context.Context, key Key, ttl time.Duration) (json.RawMessage, bool)
	Set(ctx context.Context, key Key, data any, ttl time.Duration) error
	Remove(ctx context.Context, key Key) error
	Clear(ctx context.Context, pattern *Pattern) (int, error)
	Invalidate(ctx context.Context, pattern Pattern) (int, error)
	GetOrFetch(ctx context.Context, key Key, ttl time.Duration, fetchFn RawFetchFn, opts ...Option) (Result, error)
	Stats(ctx context.Context) (Stats, error)
}

// Option tunes a single GetOrFetch or Wrap call.
type Option func(*options)

type options struct {
	forceRefresh bool
	onCacheHit   func(data any)
	onCacheMiss  func(data any)
}

// WithForceRefresh skips the cache read and, when the fetch fails, the stale
// fallback.
func WithForceRefresh(force bool) Option {
	return func(o *options) { o.forceRefresh = force }
}

// WithOnCacheHit registers a hook that runs with the cached data on a fresh hit.
func WithOnCacheHit(fn func(data any)) Option {
	return func(o *options) { o.onCacheHit = fn }
}

// WithOnCacheMiss registers a hook that runs with the fetched data after a
// successful fetch.
func WithOnCacheMiss(fn func(data any)) Option {
	return func(o *options) { o.onCacheMiss = fn }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Wrap is the type-safe form of CacheService.GetOrFetch. Cached payloads are
// decoded into T and hooks receive the typed value.
func Wrap[T any](ctx context.Context, service CacheService, key Key, ttl time.Duration, fetchFn FetchFn[T], opts ...Option) (T, error) {
	var zero T
	if fetchFn == nil {
		return zero, ErrNilFetchFn
	}

	o := applyOptions(opts)
	raw := func(ctx context.Context) (any, error) {
		return fetchFn(ctx)
	}

	result, err := service.GetOrFetch(ctx, key, ttl, raw, WithForceRefresh(o.forceRefresh))
	if err != nil {
		return zero, err
	}

	switch result.Source {
	case SourceFetch:
		if result.Fetched == nil {
			if o.onCacheMiss != nil {
				o.onCacheMiss(zero)
			}
			return zero, nil
		}
		value, ok := result.Fetched.(T)
		if !ok {
			return zero, ErrInvalidResultType
		}
		if o.onCacheMiss != nil {
			o.onCacheMiss(value)
		}
		return value, nil
	default:
		var value T
		if err := json.Unmarshal(result.Cached, &value); err != nil {
			return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "decode cached value for "+key.String())
		}
		if result.Source == SourceCache && o.onCacheHit != nil {
			o.onCacheHit(value)
		}
		return value, nil
	}
}

// Get reads a fresh entry and decodes it into T.
func Get[T any](ctx context.Context, service CacheService, key Key, ttl time.Duration) (T, bool) {
	var value T
	data, ok := service.Get(ctx, key, ttl)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, false
	}
	return value, true
}
