package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const unknownClass = "unknown"

// Service is the TTL cache engine. It stores JSON entries in a Store and
// decides freshness from the timestamp and TTL recorded in each entry.
type Service struct {
	store      Store
	namespace  string
	clock      Clock
	logger     *zap.Logger
	metrics    Metrics
	serializer KeySerializer
	flight     *singleflight.Group
}

var _ CacheService = (*Service)(nil)

// NewCacheService builds the engine over store.
func NewCacheService(store Store, cfg Config) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		store:      store,
		namespace:  cfg.Namespace,
		clock:      cfg.Clock,
		logger:     cfg.Logger.Named("cache"),
		metrics:    cfg.Metrics,
		serializer: cfg.KeySerializer,
	}
	if cfg.CoalesceFetches {
		s.flight = &singleflight.Group{}
	}
	return s, nil
}

// Namespace returns the key prefix owned by this engine.
func (s *Service) Namespace() string { return s.namespace }

// StoreKey renders key the way it is written to the store.
func (s *Service) StoreKey(key Key) string {
	return s.serializer.SerializeKey(s.namespace, key)
}

// ParseKey reads a raw store key back into a Key.
func (s *Service) ParseKey(raw string) (Key, bool) {
	return s.serializer.ParseKey(s.namespace, raw)
}

// ParsePattern reads a raw prefix such as "cache:posts:" or
// "cache:comments:post:" into a Pattern. The namespace alone selects every key.
func (s *Service) ParsePattern(raw string) (Pattern, error) {
	raw = strings.TrimSuffix(raw, "*")
	if raw == s.namespace || raw == s.namespace+KeySeparator {
		return Pattern{}, nil
	}

	key, ok := s.serializer.ParseKey(s.namespace, strings.TrimSuffix(raw, KeySeparator))
	if !ok {
		return Pattern{}, goerrors.Wrap(ErrInvalidPattern, goerrors.CategoryBadInput, raw)
	}
	return Pattern(key), nil
}

type lookupState int

const (
	entryAbsent lookupState = iota
	entryFresh
	entryExpired
	entryMalformed
)

// lookup reads the entry for storeKey without mutating the store.
func (s *Service) lookup(ctx context.Context, storeKey string, ttl time.Duration) (Entry, lookupState) {
	raw, found, err := s.store.GetItem(ctx, storeKey)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", storeKey), zap.Error(err))
		return Entry{}, entryAbsent
	}
	if !found {
		return Entry{}, entryAbsent
	}

	entry, ok := decodeEntry(raw)
	if !ok {
		s.logger.Warn("malformed cache entry", zap.String("key", storeKey))
		return Entry{}, entryMalformed
	}

	if ttl > 0 && entry.Lifetime() != ttl {
		s.logger.Warn("cache ttl mismatch, using stored ttl",
			zap.String("key", storeKey),
			zap.Duration("stored_ttl", entry.Lifetime()),
			zap.Duration("requested_ttl", ttl),
		)
	}

	if entry.Fresh(s.clock.Now()) {
		return entry, entryFresh
	}
	return entry, entryExpired
}

// Get returns the cached payload when a fresh entry exists. Expired and
// malformed entries are removed and reported as absent. Store failures are
// logged and reported as absent.
func (s *Service) Get(ctx context.Context, key Key, ttl time.Duration) (json.RawMessage, bool) {
	storeKey := s.StoreKey(key)
	entry, state := s.lookup(ctx, storeKey, ttl)
	switch state {
	case entryFresh:
		return entry.Data, true
	case entryExpired, entryMalformed:
		s.removeQuietly(ctx, storeKey)
	}
	return nil, false
}

// Set serializes data and writes it with the current time and ttl.
func (s *Service) Set(ctx context.Context, key Key, data any, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode cache data for "+key.String())
	}
	return s.write(ctx, s.StoreKey(key), payload, ttl)
}

func (s *Service) write(ctx context.Context, storeKey string, payload json.RawMessage, ttl time.Duration) error {
	raw, err := json.Marshal(newEntry(payload, s.clock.Now(), ttl))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode cache entry for "+storeKey)
	}
	if err := s.store.SetItem(ctx, storeKey, string(raw)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "write cache entry "+storeKey)
	}
	return nil
}

// Remove deletes the entry for key.
func (s *Service) Remove(ctx context.Context, key Key) error {
	storeKey := s.StoreKey(key)
	if err := s.store.RemoveItem(ctx, storeKey); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "remove cache entry "+storeKey)
	}
	return nil
}

func (s *Service) removeQuietly(ctx context.Context, storeKey string) {
	if err := s.store.RemoveItem(ctx, storeKey); err != nil {
		s.logger.Warn("cache remove failed", zap.String("key", storeKey), zap.Error(err))
	}
}

// Clear removes every key matching pattern and returns how many were
// removed. A nil pattern removes every key carrying the namespace prefix,
// including ones that no longer parse. Keys outside the namespace are never
// touched. When the bulk removal fails each key is retried on its own and the
// failures are joined into the returned error.
func (s *Service) Clear(ctx context.Context, pattern *Pattern) (int, error) {
	keys, err := s.store.GetAllKeys(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryExternal, "list cache keys")
	}

	prefix := s.namespace + KeySeparator
	var matched []string
	for _, raw := range keys {
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		if pattern == nil {
			matched = append(matched, raw)
			continue
		}
		key, ok := s.ParseKey(raw)
		if ok && pattern.Matches(key) {
			matched = append(matched, raw)
		}
	}

	label := unknownClass
	if pattern != nil && pattern.Class != "" {
		label = pattern.Class.String()
	}

	if len(matched) == 0 {
		return 0, nil
	}

	err = s.store.MultiRemove(ctx, matched)
	if err == nil {
		s.metrics.Invalidated(label, len(matched))
		s.logger.Debug("cache cleared", zap.Stringer("pattern", patternOrAll(pattern)), zap.Int("removed", len(matched)))
		return len(matched), nil
	}
	s.logger.Warn("cache bulk remove failed, removing keys one by one", zap.Error(err))

	removed := 0
	var failures []error
	for _, raw := range matched {
		if err := s.store.RemoveItem(ctx, raw); err != nil {
			s.logger.Warn("cache remove failed", zap.String("key", raw), zap.Error(err))
			failures = append(failures, err)
			continue
		}
		removed++
	}
	s.metrics.Invalidated(label, removed)

	if len(failures) > 0 {
		return removed, goerrors.Wrap(goerrors.Join(failures...), goerrors.CategoryExternal, "remove cache entries")
	}
	return removed, nil
}

// Invalidate removes every key matching pattern.
func (s *Service) Invalidate(ctx context.Context, pattern Pattern) (int, error) {
	return s.Clear(ctx, &pattern)
}

func patternOrAll(p *Pattern) Pattern {
	if p == nil {
		return Pattern{}
	}
	return *p
}

// GetOrFetch returns a fresh cached payload or calls fetchFn and stores its
// result. A result that encodes as JSON null is returned but not stored.
// When fetchFn fails and force refresh is off, whatever entry the store
// still holds for key is served regardless of age. With force refresh on the
// fetch error is always returned.
func (s *Service) GetOrFetch(ctx context.Context, key Key, ttl time.Duration, fetchFn RawFetchFn, opts ...Option) (Result, error) {
	if fetchFn == nil {
		return Result{}, ErrNilFetchFn
	}

	o := applyOptions(opts)
	storeKey := s.StoreKey(key)
	class := key.Class.String()

	if !o.forceRefresh {
		if entry, state := s.lookup(ctx, storeKey, ttl); state == entryFresh {
			s.metrics.Hit(class)
			if o.onCacheHit != nil {
				o.onCacheHit(entry.Data)
			}
			return Result{Source: SourceCache, Cached: entry.Data, Age: entry.Age(s.clock.Now())}, nil
		}
	}
	s.metrics.Miss(class)

	value, err := s.fetch(ctx, storeKey, ttl, fetchFn)
	if err != nil {
		s.metrics.FetchError(class)
		if o.forceRefresh {
			return Result{}, err
		}

		entry, state := s.lookup(ctx, storeKey, 0)
		if state == entryFresh || state == entryExpired {
			age := entry.Age(s.clock.Now())
			s.metrics.Stale(class)
			s.logger.Warn("fetch failed, serving cached data",
				zap.String("key", storeKey),
				zap.Duration("age", age),
				zap.Error(err),
			)
			return Result{Source: SourceStale, Cached: entry.Data, Age: age}, nil
		}
		return Result{}, err
	}

	if o.onCacheMiss != nil {
		o.onCacheMiss(value)
	}
	return Result{Source: SourceFetch, Fetched: value}, nil
}

// fetch runs fetchFn and stores a non-null result. Write failures are logged
// and never fail the call.
func (s *Service) fetch(ctx context.Context, storeKey string, ttl time.Duration, fetchFn RawFetchFn) (any, error) {
	run := func() (any, error) {
		value, err := fetchFn(ctx)
		if err != nil {
			return nil, err
		}
		s.storeFetched(ctx, storeKey, value, ttl)
		return value, nil
	}

	if s.flight == nil {
		return run()
	}
	value, err, _ := s.flight.Do(storeKey, run)
	return value, err
}

func (s *Service) storeFetched(ctx context.Context, storeKey string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", storeKey), zap.Error(err))
		return
	}

	if string(payload) == "null" {
		// nothing to cache; drop any outdated entry so it is not served later
		s.removeQuietly(ctx, storeKey)
		return
	}

	if err := s.write(ctx, storeKey, payload, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", storeKey), zap.Error(err))
	}
}

// Stats counts the namespace's keys, grouped by class.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	keys, err := s.store.GetAllKeys(ctx)
	if err != nil {
		return Stats{}, goerrors.Wrap(err, goerrors.CategoryExternal, "list cache keys")
	}

	stats := Stats{ByClass: map[string]int{}}
	prefix := s.namespace + KeySeparator
	for _, raw := range keys {
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		stats.Total++
		if key, ok := s.ParseKey(raw); ok {
			stats.ByClass[key.Class.String()]++
		} else {
			stats.ByClass[unknownClass]++
		}
	}
	return stats, nil
}
