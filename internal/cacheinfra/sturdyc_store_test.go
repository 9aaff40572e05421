package cacheinfra

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDefaultSturdycConfig(t *testing.T) {
	cfg := DefaultSturdycConfig()

	if cfg.Capacity != 10000 {
		t.Errorf("expected Capacity to be 10000, got %d", cfg.Capacity)
	}

	if cfg.NumShards != 256 {
		t.Errorf("expected NumShards to be 256, got %d", cfg.NumShards)
	}

	if cfg.Retention != time.Hour {
		t.Errorf("expected Retention to be 1 hour, got %v", cfg.Retention)
	}

	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}

	if len(cfg.ToSturdycOptions()) != 0 {
		t.Error("expected no extra options by default")
	}
}

func TestSturdycConfig_Validate(t *testing.T) {
	valid := DefaultSturdycConfig()

	tests := []struct {
		name     string
		mutate   func(*SturdycConfig)
		field    string
		errorMsg string
	}{
		{
			name:   "valid default config",
			mutate: func(*SturdycConfig) {},
		},
		{
			name:     "invalid capacity - zero",
			mutate:   func(c *SturdycConfig) { c.Capacity = 0 },
			field:    "Capacity",
			errorMsg: "must be greater than 0",
		},
		{
			name:     "invalid num shards - zero",
			mutate:   func(c *SturdycConfig) { c.NumShards = 0 },
			field:    "NumShards",
			errorMsg: "must be greater than 0",
		},
		{
			name:     "invalid retention - zero",
			mutate:   func(c *SturdycConfig) { c.Retention = 0 },
			field:    "Retention",
			errorMsg: "must be greater than 0",
		},
		{
			name:     "invalid eviction percentage - too low",
			mutate:   func(c *SturdycConfig) { c.EvictionPercentage = 0 },
			field:    "EvictionPercentage",
			errorMsg: "must be between 1 and 100",
		},
		{
			name:     "invalid eviction percentage - too high",
			mutate:   func(c *SturdycConfig) { c.EvictionPercentage = 101 },
			field:    "EvictionPercentage",
			errorMsg: "must be between 1 and 100",
		},
		{
			name:     "invalid eviction interval",
			mutate:   func(c *SturdycConfig) { c.EvictionInterval = -time.Second },
			field:    "EvictionInterval",
			errorMsg: "must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Errorf("expected no error but got: %v", err)
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
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestSturdycConfig_EvictionIntervalOption(t *testing.T) {
	cfg := DefaultSturdycConfig()
	cfg.EvictionInterval = time.Minute

	if len(cfg.ToSturdycOptions()) != 1 {
		t.Error("expected eviction interval option")
	}
}

func TestNewSturdycStore_InvalidConfig(t *testing.T) {
	cfg := DefaultSturdycConfig()
	cfg.Capacity = -1

	store, err := NewSturdycStore(cfg)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if store != nil {
		t.Error("expected nil store on error")
	}
}

func TestSturdycStore_Contract(t *testing.T) {
	store, err := NewSturdycStore(DefaultSturdycConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runStoreContract(t, store)
}

func TestSturdycStore_RetentionBoundsStaleData(t *testing.T) {
	cfg := DefaultSturdycConfig()
	cfg.Retention = 20 * time.Millisecond
	store, err := NewSturdycStore(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if err := store.SetItem(ctx, "cache:post:1", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := store.GetItem(ctx, "cache:post:1"); ok {
		t.Error("expected item past retention to be gone")
	}
}
