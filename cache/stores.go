package cache

import (
	"context"
	"time"

	"github.com/goliatone/go-kvcache/internal/cacheinfra"
	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

// Supported SQL drivers for SQLConfig.Driver.
const (
	DriverSQLite   = cacheinfra.DriverSQLite
	DriverPostgres = cacheinfra.DriverPostgres
)

// SturdycConfig exposes the bounded in-process store options.
type SturdycConfig struct {
	Capacity           int           `mapstructure:"capacity"`
	NumShards          int           `mapstructure:"num_shards"`
	Retention          time.Duration `mapstructure:"retention"`
	EvictionPercentage int           `mapstructure:"eviction_percentage"`
	EvictionInterval   time.Duration `mapstructure:"eviction_interval"`
}

// DefaultSturdycConfig returns a SturdycConfig populated with sensible defaults.
func DefaultSturdycConfig() SturdycConfig {
	cfg := cacheinfra.DefaultSturdycConfig()
	return SturdycConfig{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		Retention:          cfg.Retention,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}

// Validate checks whether the configuration values are valid.
func (c SturdycConfig) Validate() error {
	return c.toInternal().Validate()
}

func (c SturdycConfig) toInternal() cacheinfra.SturdycConfig {
	return cacheinfra.SturdycConfig{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		Retention:          c.Retention,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

// SQLConfig selects the database backing a SQL store.
type SQLConfig struct {
	Driver string
	DSN    string
}

// ClosableStore is a Store holding a connection that must be released.
type ClosableStore interface {
	Store
	Close() error
}

// NewMemoryStore returns an unbounded in-process store.
func NewMemoryStore() Store {
	return cacheinfra.NewMemoryStore()
}

// NewSturdycStore returns a bounded in-process store backed by sturdyc.
func NewSturdycStore(cfg SturdycConfig) (Store, error) {
	store, err := cacheinfra.NewSturdycStore(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewSQLStore opens a sqlite3 or postgres database and prepares its table.
func NewSQLStore(ctx context.Context, cfg SQLConfig) (ClosableStore, error) {
	store, err := cacheinfra.OpenSQLStore(ctx, cacheinfra.SQLConfig{Driver: cfg.Driver, DSN: cfg.DSN})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewSQLStoreFromDB uses an already opened bun database.
func NewSQLStoreFromDB(ctx context.Context, db *bun.DB) (ClosableStore, error) {
	store, err := cacheinfra.NewSQLStore(ctx, db)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewRedisStore connects to the redis server at url.
func NewRedisStore(ctx context.Context, url string) (ClosableStore, error) {
	store, err := cacheinfra.NewRedisStore(ctx, url)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewRedisStoreFromClient wraps an already configured redis client.
func NewRedisStoreFromClient(client *redis.Client) ClosableStore {
	return cacheinfra.NewRedisStoreFromClient(client)
}

// NewPrometheusMetrics registers per class cache counters on reg.
func NewPrometheusMetrics(namespace string, reg prometheus.Registerer) (Metrics, error) {
	m, err := cacheinfra.NewPrometheusMetrics(namespace, reg)
	if err != nil {
		return nil, err
	}
	return m, nil
}
