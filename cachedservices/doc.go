// Package cachedservices decorates the remote services with the TTL cache.
//
// Reads go through cache.Wrap with the key and TTL from the cache key
// registry. Writes call the remote service first and only after it
// succeeds invalidate the entries the write made outdated. Invalidation
// failures are logged and never turn a successful write into an error.
//
//	svc := cachedservices.New(backend, engine, logger)
//	posts, err := svc.Posts.GetPosts(ctx, "safety", remote.SortRecent, 20)
//	fresh, err := svc.Posts.GetPosts(ctx, "safety", remote.SortRecent, 20, cache.WithForceRefresh(true))
package cachedservices
