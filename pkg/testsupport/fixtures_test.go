package testsupport

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestReadFixture(t *testing.T) {
	data := ReadFixture(t, "entry.json")
	if !strings.Contains(string(data), `"timestamp":1000`) {
		t.Errorf("unexpected fixture contents: %s", data)
	}
}

func TestLoadJSON(t *testing.T) {
	entry := LoadJSON[struct {
		Data      []string `json:"data"`
		Timestamp int64    `json:"timestamp"`
		TTL       int64    `json:"ttl"`
	}](t, "entry.json")

	if entry.Timestamp != 1000 || entry.TTL != 500 || len(entry.Data) != 1 {
		t.Errorf("unexpected fixture contents: %+v", entry)
	}
}

func TestFixturePath(t *testing.T) {
	expected := filepath.Join("testdata", "keys.json")
	if got := FixturePath("keys.json"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("expected %v, got %v", start, clock.Now())
	}

	clock.Advance(1500 * time.Millisecond)
	if got := clock.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("expected 1.5s after start, got %v", got)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Errorf("expected %v, got %v", later, clock.Now())
	}

	if NewFakeClock(time.Time{}).Now().IsZero() {
		t.Error("expected zero start to be replaced by a fixed date")
	}
}

func TestRecordingStore(t *testing.T) {
	ctx := context.Background()
	store := NewRecordingStore()

	if err := store.SetItem(ctx, "cache:post:1", "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, ok, err := store.GetItem(ctx, "cache:post:1")
	if err != nil || !ok || value != "v1" {
		t.Fatalf("expected v1, got %q ok=%v err=%v", value, ok, err)
	}

	boom := errors.New("boom")
	store.FailSet(boom)
	if err := store.SetItem(ctx, "cache:post:2", "v2"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if _, ok := store.Raw("cache:post:2"); ok {
		t.Error("failed write must not reach the inner store")
	}

	store.FailRemoveKey("cache:post:1", boom)
	if err := store.RemoveItem(ctx, "cache:post:1"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}

	if err := store.MultiRemove(ctx, []string{"cache:post:1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed := store.Removed(); len(removed) != 1 || removed[0] != "cache:post:1" {
		t.Errorf("unexpected removed keys: %v", removed)
	}

	if store.Calls("SetItem") != 2 {
		t.Errorf("expected 2 SetItem calls, got %d", store.Calls("SetItem"))
	}
}

func TestFetchCounter(t *testing.T) {
	ctx := context.Background()
	fetch := NewFetchCounter("first")

	if v, err := fetch.Fetch(ctx); err != nil || v != "first" {
		t.Fatalf("expected first, got %q err=%v", v, err)
	}

	boom := errors.New("remote down")
	fetch.Fail(boom)
	if _, err := fetch.Raw(ctx); !errors.Is(err, boom) {
		t.Errorf("expected remote error, got %v", err)
	}

	fetch.Return("second")
	if v, _ := fetch.Fetch(ctx); v != "second" {
		t.Errorf("expected second, got %q", v)
	}

	if fetch.Calls() != 3 {
		t.Errorf("expected 3 calls, got %d", fetch.Calls())
	}
}
