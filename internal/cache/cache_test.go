package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"travelrental/internal/cache"
	"travelrental/internal/config"
)

func newCache(t *testing.T) *cache.Cache[string] {
	t.Helper()
	c, err := cache.New[string](config.CacheConfig{Capacity: 100, NumShards: 4, TTL: time.Minute, EvictionPercentage: 10})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGetOrFetchMemoizesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)
	var calls int32
	fetch := func(context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "v1", nil
		}
		return "v2", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrFetch(ctx, "k", fetch)
		if err != nil || v != "v1" {
			t.Fatalf("want cached v1, got %q (%v)", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("want 1 fetch, got %d", calls)
	}

	c.Invalidate("k")
	v, err := c.GetOrFetch(ctx, "k", fetch)
	if err != nil || v != "v2" {
		t.Fatalf("want fresh v2 after invalidate, got %q (%v)", v, err)
	}
}

func TestFailedFetchIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)
	boom := errors.New("boom")

	if _, err := c.GetOrFetch(ctx, "k", func(context.Context) (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	v, err := c.GetOrFetch(ctx, "k", func(context.Context) (string, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Fatalf("want ok after failure, got %q (%v)", v, err)
	}
	if c.Size() != 1 {
		t.Fatalf("want 1 entry, got %d", c.Size())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := cache.New[string](config.CacheConfig{Capacity: 0, NumShards: 1, TTL: time.Second, EvictionPercentage: 10})
	var ce *config.ConfigError
	if !errors.As(err, &ce) || ce.Field != "CACHE_CAPACITY" {
		t.Fatalf("want capacity ConfigError, got %v", err)
	}
}

func TestInvalidateDuringFetchServesFreshValue(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, _ := c.GetOrFetch(ctx, "product:1", func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- v
	}()
	<-started

	// the write commits and invalidates while the first read is still loading
	c.Invalidate("product:1")

	v, err := c.GetOrFetch(ctx, "product:1", func(context.Context) (string, error) { return "new", nil })
	if err != nil || v != "new" {
		t.Fatalf("read after invalidate: want new, got %q (%v)", v, err)
	}

	close(release)
	if old := <-done; old != "old" {
		t.Fatalf("in-flight read: want old, got %q", old)
	}

	v, err = c.GetOrFetch(ctx, "product:1", func(context.Context) (string, error) { return "refetched", nil })
	if err != nil || v != "new" {
		t.Fatalf("later read: want cached new, got %q (%v)", v, err)
	}
}
