// Package cache provides a client side TTL cache over a persistent key/value store.
//
// # Overview
//
// Entries are stored as JSON records holding the payload, the write time and
// the TTL, all times in milliseconds:
//
//	{"data": <payload>, "timestamp": 1700000000000, "ttl": 120000}
//
// An entry is fresh while now - timestamp <= ttl. Expired entries are
// removed lazily the next time Get sees them, but GetOrFetch keeps them
// around as a fallback when the remote source is unavailable.
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService(cache.NewMemoryStore(), cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	posts, err := cache.Wrap(ctx, svc, cache.PostsKey("safety", "recent"), cache.PostsTTL,
//		func(ctx context.Context) ([]Post, error) {
//			return remote.GetPosts(ctx, "safety", "recent", 20)
//		},
//	)
//
// Wrap accepts options to bypass the cache or observe hits and misses:
//
//	cache.Wrap(ctx, svc, key, ttl, fetch,
//		cache.WithForceRefresh(true),
//		cache.WithOnCacheMiss(func(data any) { log.Println("refreshed", key) }),
//	)
//
// # Keys
//
// Keys are structured values, a Class plus positional Params, rendered as
// namespace:class:param... with ":" and "%" escaped inside segments.
// Invalidation uses Pattern, which matches on the parsed class and a param
// prefix, so AllComments() never touches a "commentsArchive" class and
// ClassPattern(ClassProfile, "12") never touches profile "123".
//
// The registry in keys.go holds a builder and a TTL for every data family
// used by the cachedservices package.
//
// # Error Handling
//
// Fetch errors reach the caller unchanged, unless an older entry can be
// served instead. Store failures during writes in GetOrFetch are logged and
// swallowed; direct Set, Remove and Clear calls return them. Errors raised
// by the engine itself are go-errors values carrying a category.
//
// # Stores
//
// NewMemoryStore, NewSturdycStore, NewSQLStore (sqlite3 or postgres through
// bun) and NewRedisStore all satisfy Store.
package cache
