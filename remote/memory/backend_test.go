package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-kvcache/remote"
)

func steppingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestBackend_Posts(t *testing.T) {
	ctx := context.Background()
	b := New(WithClock(steppingClock()))

	first, err := b.CreatePost(ctx, remote.NewPost{Title: "First", Text: "hello", Category: "safety"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", first.AuthorName)
	assert.Equal(t, "general", first.Type)

	second, err := b.CreatePost(ctx, remote.NewPost{Title: "Second", Text: "red flag", Category: "tips"}, "u2")
	require.NoError(t, err)

	posts, err := b.GetPosts(ctx, remote.CategoryAll, remote.SortRecent, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)

	posts, err = b.GetPosts(ctx, "safety", "", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	liked, err := b.LikePost(ctx, first.ID, "u2")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = b.LikePost(ctx, first.ID, "u2")
	require.NoError(t, err)
	assert.False(t, liked, "a second like is ignored")

	top, err := b.GetPosts(ctx, "", remote.SortTop, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, top[0].ID)

	likedPosts, err := b.GetLikedPosts(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, likedPosts, 1)
	assert.Equal(t, []string{"u2"}, likedPosts[0].LikedBy)

	found, err := b.SearchPosts(ctx, "  RED flag ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, second.ID, found[0].ID)

	require.NoError(t, b.DeletePost(ctx, second.ID))
	missing, err := b.GetPost(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.True(t, goerrors.IsNotFound(b.UpdatePost(ctx, "nope", remote.PostUpdate{})))
}

func TestBackend_Outage(t *testing.T) {
	ctx := context.Background()
	b := New()
	offline := errors.New("offline")

	b.SetOutage(offline)
	_, err := b.GetProfiles(ctx)
	assert.ErrorIs(t, err, offline)
	assert.Equal(t, 1, b.Calls("GetProfiles"))

	b.SetOutage(nil)
	_, err = b.GetProfiles(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.Calls("GetProfiles"))
}

func TestBackend_Messages(t *testing.T) {
	ctx := context.Background()
	b := New(WithClock(steppingClock()))

	_, err := b.SendMessage(ctx, remote.NewMessage{SenderID: "u1", RecipientID: "u2", Text: "hi"})
	require.NoError(t, err)
	_, err = b.SendMessage(ctx, remote.NewMessage{SenderID: "u2", RecipientID: "u1", Text: "hey"})
	require.NoError(t, err)
	_, err = b.SendMessage(ctx, remote.NewMessage{SenderID: "u3", RecipientID: "u1", Text: "yo"})
	require.NoError(t, err)

	thread, err := b.GetMessages(ctx, "u2", "u1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi", thread[0].Text)

	convs, err := b.GetConversations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "yo", convs[0].LastMessage)
	assert.Equal(t, "hey", convs[1].LastMessage)
}

func TestBackend_MessagesKeepUnderscoreThreadsApart(t *testing.T) {
	ctx := context.Background()
	b := New(WithClock(steppingClock()))

	_, err := b.SendMessage(ctx, remote.NewMessage{SenderID: "a_b", RecipientID: "c", Text: "first"})
	require.NoError(t, err)
	_, err = b.SendMessage(ctx, remote.NewMessage{SenderID: "a", RecipientID: "b_c", Text: "second"})
	require.NoError(t, err)

	thread, err := b.GetMessages(ctx, "c", "a_b")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "first", thread[0].Text)

	thread, err = b.GetMessages(ctx, "a", "b_c")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "second", thread[0].Text)
}

func TestBackend_CommentsAndUsers(t *testing.T) {
	ctx := context.Background()
	b := New(WithClock(steppingClock()))

	post, err := b.CreatePost(ctx, remote.NewPost{Title: "t", Text: "x", Category: "c"}, "u1")
	require.NoError(t, err)

	_, err = b.CreateComment(ctx, remote.NewComment{PostID: post.ID, AuthorID: "u2", Text: "nice"})
	require.NoError(t, err)

	got, err := b.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Comments)
	assert.Equal(t, 1, got.Views)

	b.AddUser("u1", "Jane Doe")
	profile, err := b.GetUserProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "@janedoe", profile.Username)

	bio := "hello"
	require.NoError(t, b.UpdateUserProfile(ctx, "u1", remote.UserProfileUpdate{Bio: &bio}))
	profile, err = b.GetUserProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, profile.ProfileComplete)

	settings, err := b.GetUserSettings(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, remote.DefaultUserSettings(), settings)
}
