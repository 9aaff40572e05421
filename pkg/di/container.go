package di

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/cachedservices"
	"github.com/goliatone/go-kvcache/remote"
)

// Container provides dependency injection for cache related components.
// It owns the store selected by Config, the engine built on it and the
// optional prometheus registry.
type Container struct {
	config        Config
	logger        *zap.Logger
	clock         cache.Clock
	registerer    prometheus.Registerer
	registry      *prometheus.Registry
	store         cache.Store
	closeStore    func() error
	cacheService  *cache.Service
	keySerializer cache.KeySerializer
}

// Option customizes a Container.
type Option func(*Container)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

func WithClock(clock cache.Clock) Option {
	return func(c *Container) { c.clock = clock }
}

// WithRegisterer registers metrics on reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Container) { c.registerer = reg }
}

// NewContainer opens the configured store and builds the engine on it.
func NewContainer(ctx context.Context, config Config, opts ...Option) (*Container, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config:        config,
		logger:        zap.NewNop(),
		clock:         cache.SystemClock{},
		keySerializer: cache.NewDefaultKeySerializer(),
		closeStore:    func() error { return nil },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	store, closer, err := openStore(ctx, config.Store)
	if err != nil {
		c.logger.Error("cache store open failed", zap.String("driver", config.Store.Driver), zap.Error(err))
		return nil, err
	}
	c.store = store
	if closer != nil {
		c.closeStore = closer
	}

	cfg := cache.DefaultConfig()
	cfg.Namespace = config.Namespace
	cfg.CoalesceFetches = config.CoalesceFetches
	cfg.Logger = c.logger
	cfg.Clock = c.clock
	cfg.KeySerializer = c.keySerializer

	if config.Metrics.Enabled {
		if c.registerer == nil {
			c.registry = prometheus.NewRegistry()
			c.registerer = c.registry
		}
		metrics, err := cache.NewPrometheusMetrics(config.Metrics.Namespace, c.registerer)
		if err != nil {
			_ = c.closeStore()
			return nil, err
		}
		cfg.Metrics = metrics
	}

	service, err := cache.NewCacheService(store, cfg)
	if err != nil {
		_ = c.closeStore()
		return nil, err
	}
	c.cacheService = service

	c.logger.Info("cache container ready",
		zap.String("driver", config.Store.Driver),
		zap.String("namespace", config.Namespace),
		zap.Bool("metrics", config.Metrics.Enabled),
	)
	return c, nil
}

// NewContainerWithDefaults creates an in-memory container.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, DefaultConfig())
}

func openStore(ctx context.Context, cfg StoreConfig) (cache.Store, func() error, error) {
	switch cfg.Driver {
	case DriverMemory:
		return cache.NewMemoryStore(), nil, nil
	case DriverSturdyc:
		store, err := cache.NewSturdycStore(cfg.Sturdyc)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case DriverSQLite, DriverPostgres:
		store, err := cache.NewSQLStore(ctx, cache.SQLConfig{Driver: cfg.Driver, DSN: cfg.DSN})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case DriverRedis:
		store, err := cache.NewRedisStore(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, ErrUnsupportedDriver
	}
}

// CacheService returns the engine as its interface.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// Engine returns the concrete engine for key parsing helpers.
func (c *Container) Engine() *cache.Service {
	return c.cacheService
}

func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Store returns the store the engine writes to.
func (c *Container) Store() cache.Store {
	return c.store
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}

// Registry returns the private metrics registry, or nil when metrics are
// disabled or registered on a caller supplied Registerer.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Services builds the cached domain services over backend.
func (c *Container) Services(backend remote.Backend) *cachedservices.Services {
	return cachedservices.New(backend, c.cacheService, c.logger)
}

// Close releases the store connection, if any.
func (c *Container) Close() error {
	return c.closeStore()
}
