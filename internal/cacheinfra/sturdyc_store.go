package cacheinfra

import (
	"context"
	"sort"
	"time"

	"github.com/viccon/sturdyc"
)

// SturdycConfig holds the configuration for the sturdyc backed store.
type SturdycConfig struct {
	// Capacity defines the maximum number of entries that the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards for concurrent access.
	// Must be greater than 0. Default: 256
	NumShards int

	// Retention is how long sturdyc keeps a raw item. Freshness is decided
	// by the TTL inside each entry, so Retention only bounds how long stale
	// data stays available as a fallback. Must be greater than 0.
	Retention time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc drops items past Retention.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultSturdycConfig returns a SturdycConfig with sensible defaults for most use cases.
func DefaultSturdycConfig() SturdycConfig {
	return SturdycConfig{
		Capacity:           10000,
		NumShards:          256,
		Retention:          time.Hour,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the config to sturdyc options. Capacity,
// NumShards, Retention and EvictionPercentage go to sturdyc.New directly.
func (c SturdycConfig) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// Validate checks if the configuration values are valid.
func (c SturdycConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.Retention <= 0 {
		return &ConfigError{Field: "Retention", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// SturdycStore keeps raw entries in a sharded, bounded sturdyc client.
type SturdycStore struct {
	client *sturdyc.Client[string]
}

// NewSturdycStore validates cfg and initializes the sturdyc client.
func NewSturdycStore(cfg SturdycConfig) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[string](
		cfg.Capacity,
		cfg.NumShards,
		cfg.Retention,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)
	return &SturdycStore{client: client}, nil
}

func (s *SturdycStore) GetItem(_ context.Context, key string) (string, bool, error) {
	value, ok := s.client.Get(key)
	return value, ok, nil
}

func (s *SturdycStore) SetItem(_ context.Context, key, value string) error {
	s.client.Set(key, value)
	return nil
}

func (s *SturdycStore) RemoveItem(_ context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

func (s *SturdycStore) MultiRemove(_ context.Context, keys []string) error {
	for _, key := range keys {
		s.client.Delete(key)
	}
	return nil
}

func (s *SturdycStore) GetAllKeys(_ context.Context) ([]string, error) {
	keys := s.client.ScanKeys()
	sort.Strings(keys)
	return keys, nil
}
