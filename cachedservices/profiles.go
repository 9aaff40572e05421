package cachedservices

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/remote"
)

type ProfileService struct {
	base  remote.ProfileService
	cache cache.CacheService
	inv   invalidator
}

func NewProfileService(base remote.ProfileService, c cache.CacheService, logger *zap.Logger) *ProfileService {
	return &ProfileService{base: base, cache: c, inv: newInvalidator(c, logger)}
}

func (s *ProfileService) GetProfiles(ctx context.Context, opts ...cache.Option) ([]remote.Profile, error) {
	key := cache.ProfilesKey()
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), s.base.GetProfiles, opts...)
}

func (s *ProfileService) GetProfile(ctx context.Context, profileID string, opts ...cache.Option) (*remote.Profile, error) {
	key := cache.ProfileKey(profileID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) (*remote.Profile, error) {
		return s.base.GetProfile(ctx, profileID)
	}, opts...)
}

func (s *ProfileService) GetUserProfiles(ctx context.Context, userID string, opts ...cache.Option) ([]remote.Profile, error) {
	key := cache.UserProfilesKey(userID)
	return cache.Wrap(ctx, s.cache, key, cache.TTLFor(key), func(ctx context.Context) ([]remote.Profile, error) {
		return s.base.GetUserProfiles(ctx, userID)
	}, opts...)
}

// CreateProfile invalidates the profile listing and the creator's own list.
func (s *ProfileService) CreateProfile(ctx context.Context, input remote.NewProfile) (string, error) {
	id, err := s.base.CreateProfile(ctx, input)
	if err == nil {
		s.inv.invalidate(ctx, cache.AllProfiles())
		s.inv.remove(ctx, cache.UserProfilesKey(input.CreatedBy))
	}
	return id, err
}

func (s *ProfileService) UpdateProfile(ctx context.Context, profileID string, update remote.ProfileUpdate) error {
	err := s.base.UpdateProfile(ctx, profileID, update)
	if err == nil {
		s.invalidateProfile(ctx, profileID)
	}
	return err
}

func (s *ProfileService) DeleteProfile(ctx context.Context, profileID string) error {
	err := s.base.DeleteProfile(ctx, profileID)
	if err == nil {
		s.invalidateProfile(ctx, profileID)
	}
	return err
}

// invalidateProfile drops the profile, the listing and the profile's comments.
func (s *ProfileService) invalidateProfile(ctx context.Context, profileID string) {
	s.inv.remove(ctx, cache.ProfileKey(profileID), cache.ProfilesKey(), cache.ProfileCommentsKey(profileID))
}
