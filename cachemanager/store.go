// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cachemanager

import (
	"time"

	cache "github.com/luxfi/namedcache"
	"github.com/luxfi/namedcache/lru"
	"github.com/luxfi/namedcache/metercacher"
)

// StoreFactory builds the store backing the named cache. It is called at most
// once per name.
type StoreFactory[K comparable] func(name string) cache.Store[K, any]

// lruStoreFactory builds lru stores bounded by cfg. When metrics is set,
// evictions are counted per cache.
func lruStoreFactory[K comparable](cfg cache.Config, metrics *metercacher.Metrics, clock func() time.Time) StoreFactory[K] {
	policy := lru.PolicyFrom(cfg)
	policy.Clock = clock
	return func(name string) cache.Store[K, any] {
		if metrics == nil {
			return lru.New[K, any](policy)
		}
		evictions := metrics.Evictions(name)
		return lru.NewWithOnEvict[K, any](policy, func(K, any) {
			evictions.Inc()
		})
	}
}

// newValueCache builds the store for name and wraps it.
func newValueCache[K comparable](
	name string,
	newStore StoreFactory[K],
	metrics *metercacher.Metrics,
	allowNullValues bool,
) (*cache.ValueCache[K], error) {
	store := newStore(name)
	if store != nil && metrics != nil {
		store = metercacher.New(name, metrics, store)
	}
	return cache.NewValueCache(name, store, allowNullValues)
}
