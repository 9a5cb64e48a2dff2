package cachemanager

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fetches the value for key from the source of truth.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

// ReadThroughCache serves values from a CacheManager and loads misses
// through a Loader. Concurrent misses for the same key share one load.
// A bypassing cache calls the loader every time and stores nothing.
type ReadThroughCache[K comparable, V any] struct {
	cache  CacheManager[K, V]
	load   Loader[K, V]
	ttl    time.Duration
	bypass bool

	flight singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewReadThroughCache wraps cache with load. Values are stored for ttl.
func NewReadThroughCache[K comparable, V any](cache CacheManager[K, V], load Loader[K, V], ttl time.Duration, bypass bool) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{
		cache:  cache,
		load:   load,
		ttl:    ttl,
		bypass: bypass,
	}
}

// Get returns the cached value for key, loading it on a miss. Failed loads
// are not cached.
func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if r.bypass {
		r.misses.Add(1)
		return r.load(ctx, key)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		r.hits.Add(1)
		return value, nil
	}

	v, err, _ := r.flight.Do(fmt.Sprint(key), func() (any, error) {
		r.misses.Add(1)
		value, err := r.load(ctx, key)
		if err != nil {
			return value, err
		}
		r.cache.Set(ctx, key, value, r.ttl)
		return value, nil
	})
	value, _ := v.(V)
	return value, err
}

// Invalidate drops the cached values for keys so the next read loads them.
func (r *ReadThroughCache[K, V]) Invalidate(ctx context.Context, keys ...K) error {
	if r.bypass {
		return nil
	}
	return r.cache.Delete(ctx, keys...)
}

// Stats returns how many reads were served from the cache and how many
// went to the loader.
func (r *ReadThroughCache[K, V]) Stats() (hits, misses uint64) {
	return r.hits.Load(), r.misses.Load()
}
