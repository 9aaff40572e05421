package memory

import (
	"context"
	"sort"

	"github.com/goliatone/go-kvcache/remote"
)

func (b *Backend) SendMessage(_ context.Context, input remote.NewMessage) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("SendMessage"); err != nil {
		return "", err
	}
	if err := input.Validate(); err != nil {
		return "", err
	}

	msg := remote.Message{
		ID:          newID(),
		ThreadKey:   remote.ThreadID(input.SenderID, input.RecipientID),
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Text:        input.Text,
		CreatedAt:   b.now(),
	}
	b.messages = append(b.messages, msg)
	return msg.ID, nil
}

// GetMessages returns the thread between two users, oldest first.
func (b *Backend) GetMessages(_ context.Context, userA, userB string) ([]remote.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetMessages"); err != nil {
		return nil, err
	}

	thread := remote.ThreadID(userA, userB)
	var out []remote.Message
	for _, m := range b.messages {
		if m.ThreadKey == thread {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetConversations lists userID's threads, most recent first.
func (b *Backend) GetConversations(_ context.Context, userID string) ([]remote.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetConversations"); err != nil {
		return nil, err
	}

	latest := map[string]remote.Message{}
	for _, m := range b.messages {
		if m.SenderID != userID && m.RecipientID != userID {
			continue
		}
		if prev, ok := latest[m.ThreadKey]; !ok || !m.CreatedAt.Before(prev.CreatedAt) {
			latest[m.ThreadKey] = m
		}
	}

	out := make([]remote.Conversation, 0, len(latest))
	for thread, m := range latest {
		participants := []string{m.SenderID, m.RecipientID}
		sort.Strings(participants)
		out = append(out, remote.Conversation{
			ThreadKey:     thread,
			Participants:  participants,
			LastMessage:   m.Text,
			LastMessageAt: m.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return out, nil
}
