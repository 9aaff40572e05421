package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
)

// invalidator removes cache entries after writes, logging failures.
type invalidator struct {
	cache  cache.CacheService
	logger *zap.Logger
}

func newInvalidator(c cache.CacheService, logger *zap.Logger) invalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return invalidator{cache: c, logger: logger}
}

func (i invalidator) remove(ctx context.Context, keys ...cache.Key) {
	for _, key := range keys {
		if err := i.cache.Remove(ctx, key); err != nil {
			i.logger.Warn("cache invalidation failed", zap.Stringer("key", key), zap.Error(err))
		}
	}
}

func (i invalidator) invalidate(ctx context.Context, patterns ...cache.Pattern) {
	for _, pattern := range patterns {
		removed, err := i.cache.Invalidate(ctx, pattern)
		if err != nil {
			i.logger.Warn("cache invalidation failed", zap.Stringer("pattern", pattern), zap.Error(err))
			continue
		}
		i.logger.Debug("cache invalidated", zap.Stringer("pattern", pattern), zap.Int("removed", removed))
	}
}
