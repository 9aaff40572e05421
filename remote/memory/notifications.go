package memory

import (
	"context"
	"sort"

	"github.com/goliatone/go-kvcache/remote"
)

func (b *Backend) GetUserNotifications(_ context.Context, userID string, limit int) ([]remote.Notification, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetUserNotifications"); err != nil {
		return nil, err
	}

	var out []remote.Notification
	for _, n := range b.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (b *Backend) MarkNotificationAsRead(_ context.Context, notificationID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("MarkNotificationAsRead"); err != nil {
		return err
	}

	n, ok := b.notifications[notificationID]
	if !ok {
		return remote.ErrNotFound
	}
	n.Read = true
	return nil
}

func (b *Backend) MarkAllNotificationsAsRead(_ context.Context, userID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("MarkAllNotificationsAsRead"); err != nil {
		return err
	}

	for _, n := range b.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (b *Backend) CreateNotification(_ context.Context, input remote.NewNotification) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("CreateNotification"); err != nil {
		return "", err
	}
	if err := input.Validate(); err != nil {
		return "", err
	}

	n := &remote.Notification{
		ID:        newID(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Body:      input.Body,
		Data:      input.Data,
		CreatedAt: b.now(),
	}
	b.notifications[n.ID] = n
	return n.ID, nil
}
