// Package cache provides the read-through cache used for detail lookups.
package cache

import (
	"context"
	"strconv"
	"sync"

	"github.com/viccon/sturdyc"

	"travelrental/internal/config"
)

// Cache memoizes values of one type by key. Concurrent misses for the same key share one fetch.
// Failed fetches are never stored.
//
// Each key carries a generation. Values live under key#gen, and Invalidate moves the key to a new
// generation, so a fetch that started before the invalidation can neither fill nor feed later reads.
type Cache[T any] struct {
	client *sturdyc.Client[T]

	mu   sync.Mutex
	gens map[string]uint64
}

func New[T any](cfg config.CacheConfig) (*Cache[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[T](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
	)
	return &Cache[T]{client: client, gens: make(map[string]uint64)}, nil
}

func versioned(key string, gen uint64) string {
	return key + "#" + strconv.FormatUint(gen, 10)
}

func (c *Cache[T]) current(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return versioned(key, c.gens[key])
}

// GetOrFetch returns the cached value for key, or runs fetch and stores its result.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	return c.client.GetOrFetch(ctx, c.current(key), fetch)
}

// Invalidate drops the given keys so the next read goes to the source.
func (c *Cache[T]) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		gen := c.gens[k]
		c.client.Delete(versioned(k, gen))
		c.gens[k] = gen + 1
	}
}

func (c *Cache[T]) Size() int { return c.client.Size() }
