// Package cache provides a small keyed read-through cache with explicit
// invalidation. It replaces ambient module-level caching: the cache is
// constructed with its loader and handed to the component that needs it.
package cache

import (
	"context"
	"sync"
)

// LoaderFunc fetches the value for a key on a cache miss.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// ReadThrough caches loaded values per key until invalidated. Writers must
// call Invalidate after changing the underlying data (invalidate-on-write).
type ReadThrough[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	load    LoaderFunc[K, V]
}

// NewReadThrough creates a cache backed by the given loader.
func NewReadThrough[K comparable, V any](load LoaderFunc[K, V]) *ReadThrough[K, V] {
	return &ReadThrough[K, V]{
		entries: make(map[K]V),
		load:    load,
	}
}

// Get returns the cached value for key, loading it on a miss. A failed load
// is not cached.
func (c *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops the cached value for key.
func (c *ReadThrough[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
