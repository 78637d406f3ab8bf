// Package cache provides a small typed get-or-fetch layer over a TTL
// store. External API clients share instances of it so that repeated
// lookups within one interaction hit the network once.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// TTL caches values of type V under comparable keys for a fixed
// duration. Concurrent fetches of the same key are collapsed into a
// single loader call.
type TTL[K comparable, V any] struct {
	store *gocache.Cache
	group singleflight.Group
}

// New creates a cache with the given time-to-live. A ttl of zero means
// entries never expire (used for effectively-process-lifetime caches).
func New[K comparable, V any](ttl time.Duration) *TTL[K, V] {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &TTL[K, V]{
		store: gocache.New(ttl, 10*time.Minute),
	}
}

// GetOrFetch returns the cached value for key, calling load on a miss
// and caching the result. Loader errors are not cached.
func (c *TTL[K, V]) GetOrFetch(key K, load func() (V, error)) (V, error) {
	sk := fmt.Sprintf("%v", key)

	if v, ok := c.store.Get(sk); ok {
		return v.(V), nil
	}

	v, err, _ := c.group.Do(sk, func() (any, error) {
		if v, ok := c.store.Get(sk); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.store.SetDefault(sk, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Put stores a value directly, refreshing its TTL. Clients use it to
// seed the cache from write responses.
func (c *TTL[K, V]) Put(key K, v V) {
	c.store.SetDefault(fmt.Sprintf("%v", key), v)
}

// Invalidate drops a key.
func (c *TTL[K, V]) Invalidate(key K) {
	c.store.Delete(fmt.Sprintf("%v", key))
}
