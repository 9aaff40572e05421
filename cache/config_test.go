package cache

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Namespace != "cache" {
		t.Errorf("expected namespace cache, got %q", cfg.Namespace)
	}
	if cfg.CoalesceFetches {
		t.Error("expected fetch coalescing to be off by default")
	}
	if cfg.Logger == nil || cfg.Clock == nil || cfg.Metrics == nil || cfg.KeySerializer == nil {
		t.Error("expected every collaborator to have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		wantErr   bool
	}{
		{"valid", "app-cache.v1", false},
		{"empty", "", true},
		{"separator", "cache:v1", true},
		{"space", "my cache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{Namespace: tt.namespace}.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !goerrors.IsValidation(err) {
				t.Errorf("expected validation category, got %v", err)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.Namespace != DefaultNamespace {
		t.Errorf("expected default namespace, got %q", cfg.Namespace)
	}
	if _, ok := cfg.Metrics.(NoopMetrics); !ok {
		t.Errorf("expected NoopMetrics, got %T", cfg.Metrics)
	}
	if _, ok := cfg.Clock.(SystemClock); !ok {
		t.Errorf("expected SystemClock, got %T", cfg.Clock)
	}
}
