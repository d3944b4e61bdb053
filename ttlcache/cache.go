// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ttlcache provides a string keyed store with write expiration and a
// background janitor, backed by go-cache.
package ttlcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	cache "github.com/luxfi/namedcache"
)

var _ cache.Store[string, struct{}] = (*Cache[struct{}])(nil)

// Cache is a Store whose entries expire a fixed duration after they were
// written. It has no size bound.
type Cache[V any] struct {
	items *gocache.Cache
}

// New creates a store whose entries expire after ttl. A negative ttl keeps
// entries until they are evicted. Expired entries are purged every
// cleanupInterval; a non-positive interval disables the janitor.
func New[V any](ttl, cleanupInterval time.Duration) *Cache[V] {
	if ttl < 0 {
		ttl = gocache.NoExpiration
	}
	return &Cache[V]{
		items: gocache.New(ttl, cleanupInterval),
	}
}

// FromConfig creates a store honoring cfg.ExpireAfterWrite. It returns false
// when cfg needs bounds this store cannot enforce.
func FromConfig[V any](cfg cache.Config, cleanupInterval time.Duration) (*Cache[V], bool) {
	if cfg.MaximumSize != nil || cfg.ExpireAfterAccess != nil {
		return nil, false
	}
	ttl := time.Duration(-1)
	if cfg.ExpireAfterWrite != nil {
		ttl = *cfg.ExpireAfterWrite
		if ttl == 0 {
			// go-cache reads zero as "use the default"; expire at once instead.
			ttl = time.Nanosecond
		}
	}
	return New[V](ttl, cleanupInterval), true
}

// Put inserts an element, restarting its expiration.
func (c *Cache[V]) Put(key string, value V) {
	c.items.SetDefault(key, value)
}

// Get returns the entry with the key, if it exists and has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	value, _ := v.(V)
	return value, true
}

// Evict removes the specified entry.
func (c *Cache[V]) Evict(key string) {
	c.items.Delete(key)
}

// Flush removes all entries.
func (c *Cache[V]) Flush() {
	c.items.Flush()
}

// Len returns the number of entries, including expired ones the janitor has
// not purged yet.
func (c *Cache[V]) Len() int {
	return c.items.ItemCount()
}

// CleanUp purges expired entries.
func (c *Cache[V]) CleanUp() {
	c.items.DeleteExpired()
}
