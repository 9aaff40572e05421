// Package memory is an in-process remote.Backend. It counts calls and can
// simulate an outage, which makes it the fixture for cache behaviour tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-kvcache/remote"
)

const defaultPostLimit = 50

// Backend keeps every record in maps guarded by a single mutex.
type Backend struct {
	mu            sync.RWMutex
	now           func() time.Time
	outage        error
	calls         map[string]int
	posts         map[string]*remote.Post
	likes         map[string]time.Time // postID_userID
	profiles      map[string]*remote.Profile
	comments      map[string]*remote.Comment
	notifications map[string]*remote.Notification
	messages      []remote.Message
	userProfiles  map[string]*remote.UserProfile
	userSettings  map[string]remote.UserSettings
}

var _ remote.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

func New(opts ...Option) *Backend {
	b := &Backend{
		now:           time.Now,
		calls:         map[string]int{},
		posts:         map[string]*remote.Post{},
		likes:         map[string]time.Time{},
		profiles:      map[string]*remote.Profile{},
		comments:      map[string]*remote.Comment{},
		notifications: map[string]*remote.Notification{},
		userProfiles:  map[string]*remote.UserProfile{},
		userSettings:  map[string]remote.UserSettings{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetOutage makes every call fail with err until it is cleared with nil.
func (b *Backend) SetOutage(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outage = err
}

// Calls reports how many times method ran, failed calls included.
func (b *Backend) Calls(method string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[method]
}

// begin records the call and returns the simulated outage, if any.
// Callers must hold the write lock.
func (b *Backend) begin(method string) error {
	b.calls[method]++
	return b.outage
}

func newID() string { return uuid.NewString() }

func (b *Backend) CreatePost(_ context.Context, input remote.NewPost, userID string) (remote.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("CreatePost"); err != nil {
		return remote.Post{}, err
	}
	if err := input.Validate(); err != nil {
		return remote.Post{}, err
	}

	now := b.now()
	post := &remote.Post{
		ID:         newID(),
		Title:      input.Title,
		Text:       input.Text,
		Category:   input.Category,
		AuthorID:   userID,
		AuthorName: defaultString(input.AuthorName, "Anonymous"),
		Type:       defaultString(input.Type, "general"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.posts[post.ID] = post
	return clonePost(post), nil
}

func (b *Backend) GetPosts(_ context.Context, category, sortBy string, limit int) ([]remote.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetPosts"); err != nil {
		return nil, err
	}

	posts := b.filterPosts(func(p *remote.Post) bool {
		return category == "" || category == remote.CategoryAll || p.Category == category
	})
	sortPosts(posts, sortBy)

	if limit <= 0 {
		limit = defaultPostLimit
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// GetPost counts a view, like the real backend does.
func (b *Backend) GetPost(_ context.Context, postID string) (*remote.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetPost"); err != nil {
		return nil, err
	}

	post, ok := b.posts[postID]
	if !ok || post.IsDeleted {
		return nil, nil
	}
	post.Views++
	out := clonePost(post)
	return &out, nil
}

func (b *Backend) UpdatePost(_ context.Context, postID string, update remote.PostUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("UpdatePost"); err != nil {
		return err
	}

	post, ok := b.posts[postID]
	if !ok {
		return remote.ErrNotFound
	}
	setIf(&post.Title, update.Title)
	setIf(&post.Text, update.Text)
	setIf(&post.Category, update.Category)
	post.UpdatedAt = b.now()
	return nil
}

// DeletePost is a soft delete.
func (b *Backend) DeletePost(_ context.Context, postID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("DeletePost"); err != nil {
		return err
	}

	post, ok := b.posts[postID]
	if !ok {
		return remote.ErrNotFound
	}
	post.IsDeleted = true
	post.UpdatedAt = b.now()
	return nil
}

func (b *Backend) LikePost(_ context.Context, postID, userID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("LikePost"); err != nil {
		return false, err
	}

	post, ok := b.posts[postID]
	if !ok {
		return false, remote.ErrNotFound
	}
	likeID := postID + "_" + userID
	if _, liked := b.likes[likeID]; liked {
		return false, nil
	}
	b.likes[likeID] = b.now()
	post.Likes++
	post.LikedBy = append(post.LikedBy, userID)
	return true, nil
}

func (b *Backend) UnlikePost(_ context.Context, postID, userID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("UnlikePost"); err != nil {
		return false, err
	}

	likeID := postID + "_" + userID
	if _, liked := b.likes[likeID]; !liked {
		return false, nil
	}
	delete(b.likes, likeID)
	if post, ok := b.posts[postID]; ok {
		post.Likes--
		post.LikedBy = removeString(post.LikedBy, userID)
	}
	return true, nil
}

func (b *Backend) GetLikedPosts(_ context.Context, userID string) ([]remote.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetLikedPosts"); err != nil {
		return nil, err
	}

	type liked struct {
		post remote.Post
		at   time.Time
	}
	var found []liked
	for id, post := range b.posts {
		if at, ok := b.likes[id+"_"+userID]; ok {
			found = append(found, liked{post: clonePost(post), at: at})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].at.After(found[j].at) })

	posts := make([]remote.Post, 0, len(found))
	for _, l := range found {
		posts = append(posts, l.post)
	}
	return posts, nil
}

func (b *Backend) GetUserPosts(_ context.Context, userID string) ([]remote.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("GetUserPosts"); err != nil {
		return nil, err
	}

	posts := b.filterPosts(func(p *remote.Post) bool { return p.AuthorID == userID })
	sortPosts(posts, remote.SortRecent)
	return posts, nil
}

func (b *Backend) SearchPosts(_ context.Context, query string) ([]remote.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("SearchPosts"); err != nil {
		return nil, err
	}

	posts := b.filterPosts(func(p *remote.Post) bool {
		return remote.MatchesSearch(query, p.Title, p.Text)
	})
	sort.Slice(posts, func(i, j int) bool { return posts[i].Title < posts[j].Title })
	return posts, nil
}

func (b *Backend) filterPosts(keep func(*remote.Post) bool) []remote.Post {
	posts := make([]remote.Post, 0, len(b.posts))
	for _, post := range b.posts {
		if !post.IsDeleted && keep(post) {
			posts = append(posts, clonePost(post))
		}
	}
	return posts
}

func sortPosts(posts []remote.Post, sortBy string) {
	less := func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) }
	switch sortBy {
	case remote.SortTop:
		less = func(i, j int) bool { return posts[i].Likes > posts[j].Likes }
	case remote.SortTrending:
		less = func(i, j int) bool { return posts[i].Views > posts[j].Views }
	case remote.SortComments:
		less = func(i, j int) bool { return posts[i].Comments > posts[j].Comments }
	}
	sort.SliceStable(posts, less)
}

func clonePost(p *remote.Post) remote.Post {
	out := *p
	out.LikedBy = append([]string(nil), p.LikedBy...)
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
