package cacheinfra

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	store, err := OpenSQLStore(context.Background(), SQLConfig{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStore_Contract(t *testing.T) {
	runStoreContract(t, newSQLiteStore(t))
}

func TestSQLStore_ReopenKeepsTable(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	if err := store.SetItem(ctx, "cache:profile:1", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	again, err := NewSQLStore(ctx, store.db)
	if err != nil {
		t.Fatalf("second NewSQLStore must tolerate the existing table: %v", err)
	}
	value, ok, err := again.GetItem(ctx, "cache:profile:1")
	if err != nil || !ok || value != "v" {
		t.Errorf("expected stored value, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestOpenSQLStore_UnusableDatabase(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "cache.db")

	store, err := OpenSQLStore(context.Background(), SQLConfig{Driver: DriverSQLite, DSN: dsn})
	if err == nil {
		_ = store.Close()
		t.Fatal("expected error for a database in a missing directory")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Errorf("expected external category, got %v", err)
	}
}

func TestSQLConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   SQLConfig
		field string
	}{
		{"valid sqlite", SQLConfig{Driver: DriverSQLite, DSN: ":memory:"}, ""},
		{"valid postgres", SQLConfig{Driver: DriverPostgres, DSN: "postgres://localhost/cache"}, ""},
		{"unknown driver", SQLConfig{Driver: "mysql", DSN: "x"}, "Driver"},
		{"missing dsn", SQLConfig{Driver: DriverSQLite}, "DSN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}
