package memory

import (
	"context"
	"sort"

	"github.com/goliatone/go-kvcache/remote"
)

func (b *Backend) CreateProfile(_ context.Context, input remote.NewProfile) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("CreateProfile"); err != nil {
		return "", err
	}
	if err := input.Validate(); err != nil {
		return "", err
	}

	now := b.now()
	profile := &remote.Profile{
		ID:          newID(),
		Name:        input.Name,
		Age:         input.Age,
		Location:    input.Location,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.profiles[profile.ID] = profile
	return profile.ID, nil
}

func (b *Backend) GetProfiles(_ context.Context) ([]remote.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetProfiles"); err != nil {
		return nil, err
	}
	return b.listProfiles(func(*remote.Profile) bool { return true }), nil
}

func (b *Backend) GetProfile(_ context.Context, profileID string) (*remote.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetProfile"); err != nil {
		return nil, err
	}

	profile, ok := b.profiles[profileID]
	if !ok {
		return nil, nil
	}
	out := *profile
	return &out, nil
}

func (b *Backend) GetUserProfiles(_ context.Context, userID string) ([]remote.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetUserProfiles"); err != nil {
		return nil, err
	}
	return b.listProfiles(func(p *remote.Profile) bool { return p.CreatedBy == userID }), nil
}

func (b *Backend) UpdateProfile(_ context.Context, profileID string, update remote.ProfileUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("UpdateProfile"); err != nil {
		return err
	}

	profile, ok := b.profiles[profileID]
	if !ok {
		return remote.ErrNotFound
	}
	setIf(&profile.Name, update.Name)
	setIf(&profile.Age, update.Age)
	setIf(&profile.Location, update.Location)
	setIf(&profile.Description, update.Description)
	setIf(&profile.ImageURL, update.ImageURL)
	profile.UpdatedAt = b.now()
	return nil
}

func (b *Backend) DeleteProfile(_ context.Context, profileID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("DeleteProfile"); err != nil {
		return err
	}

	if _, ok := b.profiles[profileID]; !ok {
		return remote.ErrNotFound
	}
	delete(b.profiles, profileID)
	return nil
}

func (b *Backend) listProfiles(keep func(*remote.Profile) bool) []remote.Profile {
	profiles := make([]remote.Profile, 0, len(b.profiles))
	for _, p := range b.profiles {
		if keep(p) {
			profiles = append(profiles, *p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.After(profiles[j].CreatedAt) })
	return profiles
}
