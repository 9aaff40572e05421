package di

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-kvcache/cache"
)

// Store drivers understood by the container.
const (
	DriverMemory   = "memory"
	DriverSturdyc  = "sturdyc"
	DriverSQLite   = cache.DriverSQLite
	DriverPostgres = cache.DriverPostgres
	DriverRedis    = "redis"
)

// ErrUnsupportedDriver is returned for a store driver the container cannot build.
var ErrUnsupportedDriver = goerrors.New("unsupported store driver", goerrors.CategoryBadInput)

// Config is the file level configuration of a cache deployment.
type Config struct {
	Namespace       string        `mapstructure:"namespace"`
	CoalesceFetches bool          `mapstructure:"coalesce_fetches"`
	Store           StoreConfig   `mapstructure:"store"`
	Metrics         MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig selects the persistent store. DSN is the database DSN for the
// SQL drivers and the connection URL for redis.
type StoreConfig struct {
	Driver  string              `mapstructure:"driver"`
	DSN     string              `mapstructure:"dsn"`
	Sturdyc cache.SturdycConfig `mapstructure:"sturdyc"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// DefaultConfig returns an in-memory configuration without metrics.
func DefaultConfig() Config {
	return Config{
		Namespace: cache.DefaultNamespace,
		Store: StoreConfig{
			Driver:  DriverMemory,
			Sturdyc: cache.DefaultSturdycConfig(),
		},
		Metrics: MetricsConfig{Namespace: "kvcache"},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Namespace, validation.Required),
		validation.Field(&c.Store),
		validation.Field(&c.Metrics),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid container config")
	}
	return nil
}

func (c StoreConfig) Validate() error {
	needsDSN := c.Driver == DriverSQLite || c.Driver == DriverPostgres || c.Driver == DriverRedis
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required),
		validation.Field(&c.DSN, validation.When(needsDSN, validation.Required)),
	)
}

func (c MetricsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Namespace, validation.When(c.Enabled, validation.Required)),
	)
}
