package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

type UserService struct {
	base  remote.UserService
	cache cache.CacheService
	inv   invalidator
}

func NewUserService(base remote.UserService, c cache.CacheService, logger *zap.Logger) *UserService {
	return &UserService{base: base, cache: c, inv: newInvalidator(c, logger)}
}

func (s *UserService) GetUserProfile(ctx context.Context, userID string, opts ...cache.Option) (*remote.UserProfile, error) {
	key := cache.UserProfileKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) (*remote.UserProfile, error) {
		return s.base.GetUserProfile(ctx, userID)
	}, opts...)
}

func (s *UserService) GetUserSettings(ctx context.Context, userID string, opts ...cache.Option) (remote.UserSettings, error) {
	key := cache.UserSettingsKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) (remote.UserSettings, error) {
		return s.base.GetUserSettings(ctx, userID)
	}, opts...)
}

func (s *UserService) UpdateUserProfile(ctx context.Context, userID string, update remote.UserProfileUpdate) error {
	err := s.base.UpdateUserProfile(ctx, userID, update)
	if err == nil {
		s.inv.remove(ctx, cache.UserProfileKey(userID))
	}
	return err
}

func (s *UserService) UpdateUserSettings(ctx context.Context, userID string, settings remote.UserSettings) error {
	err := s.base.UpdateUserSettings(ctx, userID, settings)
	if err == nil {
		s.inv.remove(ctx, cache.UserSettingsKey(userID))
	}
	return err
}

// InvalidateUser drops every entry scoped to userID, for example on sign out.
func (s *UserService) InvalidateUser(ctx context.Context, userID string) {
	s.inv.remove(ctx, UserKeys(userID)...)
}

// UserKeys lists the cache keys scoped to a single user.
func UserKeys(userID string) []cache.Key {
	return []cache.Key{
		cache.UserProfileKey(userID),
		cache.UserSettingsKey(userID),
		cache.UserPostsKey(userID),
		cache.LikedPostsKey(userID),
		cache.UserProfilesKey(userID),
		cache.UserCommentsKey(userID),
		cache.ConversationsKey(userID),
		cache.NotificationsKey(userID),
	}
}
