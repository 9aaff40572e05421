package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

type CommentService struct {
	base  remote.CommentService
	cache cache.CacheService
	inv   invalidator
}

func NewCommentService(base remote.CommentService, c cache.CacheService, logger *zap.Logger) *CommentService {
	return &CommentService{base: base, cache: c, inv: newInvalidator(c, logger)}
}

func (s *CommentService) GetPostComments(ctx context.Context, postID string, opts ...cache.Option) ([]remote.Comment, error) {
	key := cache.PostCommentsKey(postID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Comment, error) {
		return s.base.GetPostComments(ctx, postID)
	}, opts...)
}

func (s *CommentService) GetProfileComments(ctx context.Context, profileID string, opts ...cache.Option) ([]remote.Comment, error) {
	key := cache.ProfileCommentsKey(profileID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Comment, error) {
		return s.base.GetProfileComments(ctx, profileID)
	}, opts...)
}

func (s *CommentService) GetUserComments(ctx context.Context, userID string, opts ...cache.Option) ([]remote.Comment, error) {
	key := cache.UserCommentsKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Comment, error) {
		return s.base.GetUserComments(ctx, userID)
	}, opts...)
}

// CreateComment invalidates the thread the comment was added to and the
// author's own comment list. A post comment also changes the post's
// comment count, so the post entry and every post listing go too.
func (s *CommentService) CreateComment(ctx context.Context, input remote.NewComment) (string, error) {
	id, err := s.base.CreateComment(ctx, input)
	if err != nil {
		return id, err
	}

	if input.PostID != "" {
		s.inv.remove(ctx, cache.PostCommentsKey(input.PostID), cache.PostKey(input.PostID))
		s.inv.invalidate(ctx, cache.AllPostLists())
	}
	if input.ProfileID != "" {
		s.inv.remove(ctx, cache.ProfileCommentsKey(input.ProfileID))
	}
	s.inv.remove(ctx, cache.UserCommentsKey(input.AuthorID))
	return id, nil
}

// UpdateComment does not know which thread the comment belongs to, so every
// comment list is invalidated.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, text string) error {
	err := s.base.UpdateComment(ctx, commentID, text)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllComments())
	}
	return err
}

// DeleteComment lowers the comment count of a post it does not know, so
// every single post entry and post listing is invalidated with the comments.
func (s *CommentService) DeleteComment(ctx context.Context, commentID string) error {
	err := s.base.DeleteComment(ctx, commentID)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllComments(), cache.AllPosts(), cache.AllPostLists())
	}
	return err
}
