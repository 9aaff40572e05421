package cacheinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported SQL drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLConfig selects the database backing a SQLStore.
type SQLConfig struct {
	Driver string
	DSN    string
}

// Validate checks if the configuration values are valid.
func (c SQLConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return &ConfigError{Field: "Driver", Message: fmt.Sprintf("unsupported driver %q", c.Driver)}
	}
	if c.DSN == "" {
		return &ConfigError{Field: "DSN", Message: "cannot be empty"}
	}
	return nil
}

// kvRecord is a single stored item.
type kvRecord struct {
	bun.BaseModel `bun:"table:cache_items,alias:ci"`

	Key   string `bun:"cache_key,pk"`
	Value string `bun:"cache_value,notnull"`
}

// SQLStore persists items in a two column table through bun.
type SQLStore struct {
	db *bun.DB
}

// OpenSQLStore opens the database described by cfg and prepares the table.
func OpenSQLStore(ctx context.Context, cfg SQLConfig) (*SQLStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "open "+cfg.Driver)
	}

	var db *bun.DB
	switch cfg.Driver {
	case DriverSQLite:
		// a single connection keeps ":memory:" databases shared across calls
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	store, err := NewSQLStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an existing bun database and creates the table if needed.
func NewSQLStore(ctx context.Context, db *bun.DB) (*SQLStore, error) {
	_, err := db.NewCreateTable().
		Model((*kvRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "create cache table")
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var rec kvRecord
	err := s.db.NewSelect().
		Model(&rec).
		Where("cache_key = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (s *SQLStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.NewInsert().
		Model(&kvRecord{Key: key, Value: value}).
		On("CONFLICT (cache_key) DO UPDATE").
		Set("cache_value = EXCLUDED.cache_value").
		Exec(ctx)
	return err
}

func (s *SQLStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*kvRecord)(nil)).
		Where("cache_key = ?", key).
		Exec(ctx)
	return err
}

func (s *SQLStore) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().
		Model((*kvRecord)(nil)).
		Where("cache_key IN (?)", bun.In(keys)).
		Exec(ctx)
	return err
}

func (s *SQLStore) GetAllKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.NewSelect().
		Model((*kvRecord)(nil)).
		Column("cache_key").
		Order("cache_key ASC").
		Scan(ctx, &keys)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return keys, nil
}

// Close releases the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
