package memory

import (
	"context"

	"github.com/goliatone/go-kvcache/remote"
)

// AddUser seeds an account record. It is not part of remote.Backend.
func (b *Backend) AddUser(userID, displayName string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.userProfiles[userID] = &remote.UserProfile{
		UserID:      userID,
		DisplayName: displayName,
		Username:    remote.GenerateUsername(displayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.userSettings[userID] = remote.DefaultUserSettings()
}

func (b *Backend) GetUserProfile(_ context.Context, userID string) (*remote.UserProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetUserProfile"); err != nil {
		return nil, err
	}

	profile, ok := b.userProfiles[userID]
	if !ok {
		return nil, nil
	}
	out := *profile
	return &out, nil
}

func (b *Backend) UpdateUserProfile(_ context.Context, userID string, update remote.UserProfileUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("UpdateUserProfile"); err != nil {
		return err
	}

	profile, ok := b.userProfiles[userID]
	if !ok {
		return remote.ErrNotFound
	}
	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
		profile.Username = remote.GenerateUsername(*update.DisplayName)
	}
	setIf(&profile.Bio, update.Bio)
	profile.ProfileComplete = profile.DisplayName != "" && profile.Bio != ""
	profile.UpdatedAt = b.now()
	return nil
}

// GetUserSettings falls back to the defaults for unknown users.
func (b *Backend) GetUserSettings(_ context.Context, userID string) (remote.UserSettings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetUserSettings"); err != nil {
		return remote.UserSettings{}, err
	}

	if settings, ok := b.userSettings[userID]; ok {
		return settings, nil
	}
	return remote.DefaultUserSettings(), nil
}

func (b *Backend) UpdateUserSettings(_ context.Context, userID string, settings remote.UserSettings) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("UpdateUserSettings"); err != nil {
		return err
	}

	b.userSettings[userID] = settings
	return nil
}
