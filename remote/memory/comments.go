package memory

import (
	"context"
	"sort"

	"github.com/goliatone/go-kvcache/remote"
)

// CreateComment also bumps the comment counter of the target post.
func (b *Backend) CreateComment(_ context.Context, input remote.NewComment) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("CreateComment"); err != nil {
		return "", err
	}
	if err := input.Validate(); err != nil {
		return "", err
	}

	now := b.now()
	comment := &remote.Comment{
		ID:         newID(),
		PostID:     input.PostID,
		ProfileID:  input.ProfileID,
		AuthorID:   input.AuthorID,
		AuthorName: defaultString(input.AuthorName, "Anonymous"),
		Text:       input.Text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.comments[comment.ID] = comment
	if post, ok := b.posts[input.PostID]; ok {
		post.Comments++
	}
	return comment.ID, nil
}

func (b *Backend) GetPostComments(_ context.Context, postID string) ([]remote.Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetPostComments"); err != nil {
		return nil, err
	}
	return b.listComments(func(c *remote.Comment) bool { return c.PostID == postID }), nil
}

func (b *Backend) GetProfileComments(_ context.Context, profileID string) ([]remote.Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetProfileComments"); err != nil {
		return nil, err
	}
	return b.listComments(func(c *remote.Comment) bool { return c.ProfileID == profileID }), nil
}

func (b *Backend) GetUserComments(_ context.Context, userID string) ([]remote.Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetUserComments"); err != nil {
		return nil, err
	}
	return b.listComments(func(c *remote.Comment) bool { return c.AuthorID == userID }), nil
}

func (b *Backend) UpdateComment(_ context.Context, commentID, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("UpdateComment"); err != nil {
		return err
	}

	comment, ok := b.comments[commentID]
	if !ok {
		return remote.ErrNotFound
	}
	comment.Text = text
	comment.UpdatedAt = b.now()
	return nil
}

func (b *Backend) DeleteComment(_ context.Context, commentID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("DeleteComment"); err != nil {
		return err
	}

	comment, ok := b.comments[commentID]
	if !ok {
		return remote.ErrNotFound
	}
	delete(b.comments, commentID)
	if post, ok := b.posts[comment.PostID]; ok && post.Comments > 0 {
		post.Comments--
	}
	return nil
}

// listComments returns matches oldest first, the order threads are read in.
func (b *Backend) listComments(keep func(*remote.Comment) bool) []remote.Comment {
	comments := make([]remote.Comment, 0)
	for _, c := range b.comments {
		if keep(c) {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments
}
