package cache

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap"
)

// DefaultNamespace prefixes every key written by the engine.
const DefaultNamespace = "cache"

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// Config exposes engine configuration options for consumers of the cache package.
type Config struct {
	// Namespace is the first key segment. It must not contain KeySeparator.
	Namespace string

	// CoalesceFetches collapses concurrent fetches for the same key into one
	// call. Disabled by default, concurrent callers then each fetch and the
	// last write wins.
	CoalesceFetches bool

	// Logger receives write/invalidation failures and stale fallbacks.
	// Nil means zap.NewNop().
	Logger *zap.Logger

	// Clock defaults to SystemClock.
	Clock Clock

	// Metrics defaults to NoopMetrics.
	Metrics Metrics

	// KeySerializer defaults to NewDefaultKeySerializer().
	KeySerializer KeySerializer
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Namespace:     DefaultNamespace,
		Logger:        zap.NewNop(),
		Clock:         SystemClock{},
		Metrics:       NoopMetrics{},
		KeySerializer: NewDefaultKeySerializer(),
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Namespace, validation.Required, validation.Match(namespacePattern)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid cache config")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Metrics == nil {
		c.Metrics = NoopMetrics{}
	}
	if c.KeySerializer == nil {
		c.KeySerializer = NewDefaultKeySerializer()
	}
	return c
}
