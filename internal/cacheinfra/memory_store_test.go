package cacheinfra

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("cache:post:%d", i%5)
			_ = store.SetItem(ctx, key, fmt.Sprintf("v%d", i))
		}(i)
	}
	wg.Wait()

	if store.Len() != 5 {
		t.Errorf("expected 5 keys, got %d", store.Len())
	}
}
