package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

// PostService caches post listings, single posts and per-user post lists.
type PostService struct {
	base  remote.PostService
	cache cache.CacheService
	inv   invalidator
}

func NewPostService(base remote.PostService, c cache.CacheService, logger *zap.Logger) *PostService {
	return &PostService{base: base, cache: c, inv: newInvalidator(c, logger)}
}

// GetPosts caches per category and sort order. The limit is not part of the
// key, the first caller's limit decides how many posts the entry holds.
func (s *PostService) GetPosts(ctx context.Context, category, sortBy string, limit int, opts ...cache.Option) ([]remote.Post, error) {
	key := cache.PostsKey(category, sortBy)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Post, error) {
		return s.base.GetPosts(ctx, category, sortBy, limit)
	}, opts...)
}

// GetPost returns nil for a missing post. Missing posts are not cached.
func (s *PostService) GetPost(ctx context.Context, postID string, opts ...cache.Option) (*remote.Post, error) {
	key := cache.PostKey(postID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) (*remote.Post, error) {
		return s.base.GetPost(ctx, postID)
	}, opts...)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string, opts ...cache.Option) ([]remote.Post, error) {
	key := cache.UserPostsKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Post, error) {
		return s.base.GetUserPosts(ctx, userID)
	}, opts...)
}

func (s *PostService) GetLikedPosts(ctx context.Context, userID string, opts ...cache.Option) ([]remote.Post, error) {
	key := cache.LikedPostsKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Post, error) {
		return s.base.GetLikedPosts(ctx, userID)
	}, opts...)
}

// SearchPosts always queries the remote service.
func (s *PostService) SearchPosts(ctx context.Context, query string) ([]remote.Post, error) {
	return s.base.SearchPosts(ctx, query)
}

// CreatePost invalidates every post listing, including per-user lists.
func (s *PostService) CreatePost(ctx context.Context, input remote.NewPost, userID string) (remote.Post, error) {
	post, err := s.base.CreatePost(ctx, input, userID)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllPostLists())
	}
	return post, err
}

func (s *PostService) UpdatePost(ctx context.Context, postID string, update remote.PostUpdate) error {
	err := s.base.UpdatePost(ctx, postID, update)
	if err == nil {
		s.invalidatePost(ctx, postID)
	}
	return err
}

func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	err := s.base.DeletePost(ctx, postID)
	if err == nil {
		s.invalidatePost(ctx, postID)
	}
	return err
}

// LikePost invalidates the post and the liking user's liked posts only.
// Other users' liked posts entries stay cached.
func (s *PostService) LikePost(ctx context.Context, postID, userID string) (bool, error) {
	liked, err := s.base.LikePost(ctx, postID, userID)
	if err == nil {
		s.invalidatePost(ctx, postID)
		s.inv.remove(ctx, cache.LikedPostsKey(userID))
	}
	return liked, err
}

func (s *PostService) UnlikePost(ctx context.Context, postID, userID string) (bool, error) {
	unliked, err := s.base.UnlikePost(ctx, postID, userID)
	if err == nil {
		s.invalidatePost(ctx, postID)
		s.inv.remove(ctx, cache.LikedPostsKey(userID))
	}
	return unliked, err
}

// invalidatePost drops the post entry and every listing that may embed it.
func (s *PostService) invalidatePost(ctx context.Context, postID string) {
	s.inv.remove(ctx, cache.PostKey(postID))
	s.inv.invalidate(ctx, cache.AllPostLists())
}
