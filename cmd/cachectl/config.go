package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-kvcache/pkg/di"
)

const (
	envPrefix       = "KVCACHE"
	defaultLogLevel = "warn"
)

// cliConfig is the container configuration plus the CLI's own settings.
type cliConfig struct {
	di.Config `mapstructure:",squash"`

	// LogLevel applies when --log-level is not given.
	LogLevel string `mapstructure:"log_level"`
}

// loadConfig layers defaults, the optional YAML file and KVCACHE_ variables.
func loadConfig(path string) (cliConfig, error) {
	v := viper.New()
	setDefaults(v, di.DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return cliConfig{}, err
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, cfg di.Config) {
	v.SetDefault("namespace", cfg.Namespace)
	v.SetDefault("coalesce_fetches", cfg.CoalesceFetches)
	v.SetDefault("log_level", defaultLogLevel)

	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("store.dsn", cfg.Store.DSN)
	v.SetDefault("store.sturdyc.capacity", cfg.Store.Sturdyc.Capacity)
	v.SetDefault("store.sturdyc.num_shards", cfg.Store.Sturdyc.NumShards)
	v.SetDefault("store.sturdyc.retention", cfg.Store.Sturdyc.Retention)
	v.SetDefault("store.sturdyc.eviction_percentage", cfg.Store.Sturdyc.EvictionPercentage)
	v.SetDefault("store.sturdyc.eviction_interval", cfg.Store.Sturdyc.EvictionInterval)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.namespace", cfg.Metrics.Namespace)
}
