package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/pkg/testsupport"
)

type post struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestWrap_FreshnessTimeline(t *testing.T) {
	ctx := context.Background()
	f := newEngine(t)
	key := cache.PostKey("p1")
	fetch := testsupport.NewFetchCounter(post{ID: "p1", Title: "v1"})

	got, err := cache.Wrap(ctx, f.svc, key, time.Second, fetch.Fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", got.Title)

	fetch.Return(post{ID: "p1", Title: "v2"})

	f.clock.Advance(500 * time.Millisecond)
	got, err = cache.Wrap(ctx, f.svc, key, time.Second, fetch.Fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", got.Title)
	assert.Equal(t, 1, fetch.Calls())

	f.clock.Advance(time.Second)
	got, err = cache.Wrap(ctx, f.svc, key, time.Second, fetch.Fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)
	assert.Equal(t, 2, fetch.Calls())
}

func TestWrap_StaleFallbackTyped(t *testing.T) {
	ctx := context.Background()
	f := newEngine(t)
	key := cache.UserPostsKey("u1")
	fetch := testsupport.NewFetchCounter([]post{{ID: "p1"}})

	_, err := cache.Wrap(ctx, f.svc, key, cache.UserDataTTL, fetch.Fetch)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	fetch.Fail(errors.New("network unreachable"))

	got, err := cache.Wrap(ctx, f.svc, key, cache.UserDataTTL, fetch.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []post{{ID: "p1"}}, got)

	_, err = cache.Wrap(ctx, f.svc, key, cache.UserDataTTL, fetch.Fetch, cache.WithForceRefresh(true))
	assert.Error(t, err)
}

func TestWrap_TypedHooks(t *testing.T) {
	ctx := context.Background()
	f := newEngine(t)
	key := cache.PostKey("p1")
	fetch := testsupport.NewFetchCounter(post{ID: "p1"})

	var missed, hit []post
	opts := []cache.Option{
		cache.WithOnCacheMiss(func(data any) { missed = append(missed, data.(post)) }),
		cache.WithOnCacheHit(func(data any) { hit = append(hit, data.(post)) }),
	}

	_, err := cache.Wrap(ctx, f.svc, key, cache.PostsTTL, fetch.Fetch, opts...)
	require.NoError(t, err)
	_, err = cache.Wrap(ctx, f.svc, key, cache.PostsTTL, fetch.Fetch, opts...)
	require.NoError(t, err)

	assert.Equal(t, []post{{ID: "p1"}}, missed)
	assert.Equal(t, []post{{ID: "p1"}}, hit)
}
