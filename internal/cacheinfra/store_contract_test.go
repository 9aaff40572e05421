package cacheinfra

import (
	"context"
	"reflect"
	"testing"
)

// kvStore is the method set every store in this package implements.
type kvStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys []string) error
	GetAllKeys(ctx context.Context) ([]string, error)
}

// runStoreContract exercises the behaviour the cache engine relies on.
func runStoreContract(t *testing.T, store kvStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.GetItem(ctx, "cache:post:missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	items := map[string]string{
		"cache:post:1":     `{"data":1}`,
		"cache:post:2":     `{"data":2}`,
		"cache:posts:list": `{"data":[]}`,
	}
	for k, v := range items {
		if err := store.SetItem(ctx, k, v); err != nil {
			t.Fatalf("SetItem(%s): %v", k, err)
		}
	}

	if err := store.SetItem(ctx, "cache:post:1", `{"data":"updated"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := store.GetItem(ctx, "cache:post:1")
	if err != nil || !ok || value != `{"data":"updated"}` {
		t.Fatalf("expected overwritten value, got %q ok=%v err=%v", value, ok, err)
	}

	keys, err := store.GetAllKeys(ctx)
	if err != nil {
		t.Fatalf("GetAllKeys: %v", err)
	}
	want := []string{"cache:post:1", "cache:post:2", "cache:posts:list"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}

	if err := store.RemoveItem(ctx, "cache:post:2"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := store.RemoveItem(ctx, "cache:post:never"); err != nil {
		t.Fatalf("removing a missing key must not fail: %v", err)
	}
	if err := store.MultiRemove(ctx, []string{"cache:post:1", "cache:posts:list"}); err != nil {
		t.Fatalf("MultiRemove: %v", err)
	}
	if err := store.MultiRemove(ctx, nil); err != nil {
		t.Fatalf("MultiRemove(nil): %v", err)
	}

	keys, err = store.GetAllKeys(ctx)
	if err != nil {
		t.Fatalf("GetAllKeys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected empty store, got %v", keys)
	}
}
