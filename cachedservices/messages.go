package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

type MessageService struct {
	base  remote.MessageService
	cache cache.CacheService
	inv   invalidator
}

func NewMessageService(base remote.MessageService, c cache.CacheService, logger *zap.Logger) *MessageService {
	return &MessageService{base: base, cache: c, inv: newInvalidator(c, logger)}
}

// GetMessages caches the thread between two users. Argument order does not
// matter, both directions share one entry.
func (s *MessageService) GetMessages(ctx context.Context, userA, userB string, opts ...cache.Option) ([]remote.Message, error) {
	key := cache.MessagesKey(userA, userB)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Message, error) {
		return s.base.GetMessages(ctx, userA, userB)
	}, opts...)
}

func (s *MessageService) GetConversations(ctx context.Context, userID string, opts ...cache.Option) ([]remote.Conversation, error) {
	key := cache.ConversationsKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Conversation, error) {
		return s.base.GetConversations(ctx, userID)
	}, opts...)
}

// SendMessage invalidates the thread and both participants' conversations.
func (s *MessageService) SendMessage(ctx context.Context, input remote.NewMessage) (string, error) {
	id, err := s.base.SendMessage(ctx, input)
	if err == nil {
		s.inv.remove(ctx,
			cache.MessagesKey(input.SenderID, input.RecipientID),
			cache.ConversationsKey(input.SenderID),
			cache.ConversationsKey(input.RecipientID),
		)
	}
	return id, err
}
