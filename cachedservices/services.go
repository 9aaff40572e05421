package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

// Services bundles the cached wrappers built over one backend and one cache.
type Services struct {
	Posts         *PostService
	Profiles      *ProfileService
	Comments      *CommentService
	Notifications *NotificationService
	Messages      *MessageService
	Users         *UserService

	cache  cache.CacheService
	logger *zap.Logger
}

func New(backend remote.Backend, c cache.CacheService, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cachedservices")

	return &Services{
		Posts:         NewPostService(backend, c, logger),
		Profiles:      NewProfileService(backend, c, logger),
		Comments:      NewCommentService(backend, c, logger),
		Notifications: NewNotificationService(backend, c, logger),
		Messages:      NewMessageService(backend, c, logger),
		Users:         NewUserService(backend, c, logger),
		cache:         c,
		logger:        logger,
	}
}

// ClearAll removes every entry in the cache namespace.
func (s *Services) ClearAll(ctx context.Context) (int, error) {
	removed, err := s.cache.Clear(ctx, nil)
	if err != nil {
		s.logger.Error("cache clear failed", zap.Int("removed", removed), zap.Error(err))
		return removed, err
	}
	s.logger.Info("cache cleared", zap.Int("removed", removed))
	return removed, nil
}

// InvalidateUser drops every entry scoped to userID.
func (s *Services) InvalidateUser(ctx context.Context, userID string) {
	s.Users.InvalidateUser(ctx, userID)
}

func (s *Services) Stats(ctx context.Context) (cache.Stats, error) {
	return s.cache.Stats(ctx)
}
