package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

type NotificationService struct {
	base  remote.NotificationService
	cache cache.CacheService
	inv   invalidator
}

func NewNotificationService(base remote.NotificationService, c cache.CacheService, logger *zap.Logger) *NotificationService {
	return &NotificationService{base: base, cache: c, inv: newInvalidator(c, logger)}
}

// GetUserNotifications caches per user. The limit is not part of the key.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string, limit int, opts ...cache.Option) ([]remote.Notification, error) {
	key := cache.NotificationsKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Notification, error) {
		return s.base.GetUserNotifications(ctx, userID, limit)
	}, opts...)
}

// MarkNotificationAsRead only knows the notification id, so every user's
// notification list is invalidated.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	err := s.base.MarkNotificationAsRead(ctx, notificationID)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllNotifications())
	}
	return err
}

func (s *NotificationService) MarkAllNotificationsAsRead(ctx context.Context, userID string) error {
	err := s.base.MarkAllNotificationsAsRead(ctx, userID)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllNotifications())
	}
	return err
}

func (s *NotificationService) CreateNotification(ctx context.Context, input remote.NewNotification) (string, error) {
	id, err := s.base.CreateNotification(ctx, input)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllNotifications())
	}
	return id, err
}
