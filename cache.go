// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache provides named, value-adapting caches on top of pluggable
// evicting stores.
package cache

// Store is the evicting key value store a named cache delegates to.
//
// Implementations must be safe for concurrent use and must treat entries whose
// time to live has elapsed as absent, even if they were not purged yet.
type Store[K comparable, V any] interface {
	// Put inserts an element into the store, replacing any previous value.
	Put(key K, value V)

	// Get returns the entry with the key, if it exists.
	Get(key K) (V, bool)

	// Evict removes the specified entry from the store.
	Evict(key K)

	// Flush removes all entries from the store.
	Flush()

	// Len returns the number of elements in the store.
	Len() int
}

// Cache is the named cache abstraction handed out by a cache manager.
//
// Get distinguishes an absent key (ok == false) from a key that is present
// with a nil value (nil, true).
type Cache[K comparable] interface {
	// Name returns the name of the cache.
	Name() string

	// NativeStore returns the underlying store.
	NativeStore() Store[K, any]

	// Get returns the value associated with key, if any.
	Get(key K) (any, bool)

	// Put associates value with key.
	Put(key K, value any) error

	// Evict removes the mapping for key, if present.
	Evict(key K)

	// Clear removes all mappings.
	Clear()
}
