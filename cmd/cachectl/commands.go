package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-kvcache/cache"
	"github.com/goliatone/go-kvcache/pkg/di"
	"github.com/goliatone/go-kvcache/remote"
	"github.com/goliatone/go-kvcache/remote/memory"
)

var (
	errMissingCommand = goerrors.New("missing command", goerrors.CategoryBadInput)
	errUnknownCommand = goerrors.New("unknown command", goerrors.CategoryBadInput)
	errUsage          = goerrors.New("wrong number of arguments", goerrors.CategoryBadInput)
	errForeignKey     = goerrors.New("key is outside the cache namespace", goerrors.CategoryBadInput)
)

type app struct {
	container *di.Container
	logger    *zap.Logger
	out       io.Writer
}

func newApp(ctx context.Context, cfg di.Config, logger *zap.Logger, out io.Writer) (*app, error) {
	container, err := di.NewContainer(ctx, cfg, di.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &app{container: container, logger: logger, out: out}, nil
}

func (a *app) close() {
	if err := a.container.Close(); err != nil {
		a.logger.Warn("close store", zap.Error(err))
	}
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "stats":
		return a.stats(ctx)
	case "clear":
		if len(args) > 1 {
			return errUsage
		}
		return a.clear(ctx, args)
	case "invalidate":
		if len(args) == 0 {
			return errUsage
		}
		return a.invalidate(ctx, cache.ClassPattern(cache.Class(args[0]), args[1:]...))
	case "get":
		if len(args) != 1 {
			return errUsage
		}
		return a.get(ctx, args[0])
	case "demo":
		return a.demo(ctx)
	default:
		a.logger.Error("unknown command", zap.String("command", command))
		return errUnknownCommand
	}
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.container.CacheService().Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats(stats)
	return nil
}

func (a *app) printStats(stats cache.Stats) {
	fmt.Fprintf(a.out, "total: %d\n", stats.Total)

	classes := make([]string, 0, len(stats.ByClass))
	for class := range stats.ByClass {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		fmt.Fprintf(a.out, "  %-16s %d\n", class, stats.ByClass[class])
	}
}

func (a *app) clear(ctx context.Context, args []string) error {
	if len(args) == 0 {
		removed, err := a.container.CacheService().Clear(ctx, nil)
		fmt.Fprintf(a.out, "removed %d entries\n", removed)
		return err
	}

	pattern, err := a.container.Engine().ParsePattern(args[0])
	if err != nil {
		return err
	}
	return a.invalidate(ctx, pattern)
}

func (a *app) invalidate(ctx context.Context, pattern cache.Pattern) error {
	removed, err := a.container.CacheService().Invalidate(ctx, pattern)
	fmt.Fprintf(a.out, "removed %d entries matching %s\n", removed, pattern)
	return err
}

func (a *app) get(ctx context.Context, raw string) error {
	key, ok := a.container.Engine().ParseKey(raw)
	if !ok {
		a.logger.Error("key is outside the cache namespace", zap.String("key", raw))
		return errForeignKey
	}

	data, found := a.container.CacheService().Get(ctx, key, cache.TTLFor(key))
	if !found {
		fmt.Fprintf(a.out, "%s: miss\n", key)
		return nil
	}
	fmt.Fprintf(a.out, "%s: %s\n", key, data)
	return nil
}

// demo seeds an in-memory backend and shows reads switching between the
// remote service and the cache as writes invalidate entries.
func (a *app) demo(ctx context.Context) error {
	backend := memory.New()
	backend.AddUser("u1", "Demo User")
	services := a.container.Services(backend)

	trace := func(label string) []cache.Option {
		return []cache.Option{
			cache.WithOnCacheHit(func(any) { fmt.Fprintf(a.out, "%-28s hit\n", label) }),
			cache.WithOnCacheMiss(func(any) { fmt.Fprintf(a.out, "%-28s miss (fetched)\n", label) }),
		}
	}

	post, err := services.Posts.CreatePost(ctx, remote.NewPost{
		Title:    "Welcome",
		Text:     "First post in the demo feed",
		Category: "general",
	}, "u1")
	if err != nil {
		return err
	}

	steps := []struct {
		label string
		run   func(opts []cache.Option) error
	}{
		{"posts list", func(opts []cache.Option) error {
			_, err := services.Posts.GetPosts(ctx, remote.CategoryAll, remote.SortRecent, 20, opts...)
			return err
		}},
		{"posts list again", func(opts []cache.Option) error {
			_, err := services.Posts.GetPosts(ctx, remote.CategoryAll, remote.SortRecent, 20, opts...)
			return err
		}},
		{"like post", func([]cache.Option) error {
			_, err := services.Posts.LikePost(ctx, post.ID, "u1")
			return err
		}},
		{"posts list after like", func(opts []cache.Option) error {
			_, err := services.Posts.GetPosts(ctx, remote.CategoryAll, remote.SortRecent, 20, opts...)
			return err
		}},
		{"user settings", func(opts []cache.Option) error {
			_, err := services.Users.GetUserSettings(ctx, "u1", opts...)
			return err
		}},
		{"user settings again", func(opts []cache.Option) error {
			_, err := services.Users.GetUserSettings(ctx, "u1", opts...)
			return err
		}},
	}

	for _, step := range steps {
		if err := step.run(trace(step.label)); err != nil {
			return fmt.Errorf("%s: %w", step.label, err)
		}
	}

	stats, err := services.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats(stats)

	if reg := a.container.Registry(); reg != nil {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, family := range families {
			var total float64
			for _, metric := range family.GetMetric() {
				total += metric.GetCounter().GetValue()
			}
			fmt.Fprintf(a.out, "%s %g\n", family.GetName(), total)
		}
	}
	return nil
}
