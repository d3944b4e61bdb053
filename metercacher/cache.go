// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metercacher provides metered store implementations.
package metercacher

import (
	"time"

	cache "github.com/luxfi/namedcache"
)

var _ cache.Store[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// portionFiller is implemented by bounded stores such as lru.Cache.
type portionFiller interface {
	PortionFilled() float64
}

// Cache wraps a Store with metrics.
type Cache[K comparable, V any] struct {
	cache.Store[K, V]
	metrics *cacheMetrics
}

// New creates a new metered store wrapper reporting under the given cache
// name.
func New[K comparable, V any](
	name string,
	metrics *Metrics,
	s cache.Store[K, V],
) *Cache[K, V] {
	return &Cache[K, V]{
		Store:   s,
		metrics: metrics.forCache(name),
	}
}

func (c *Cache[K, V]) Put(key K, value V) {
	start := time.Now()
	c.Store.Put(key, value)
	putDuration := time.Since(start)

	c.metrics.putCount.Inc()
	c.metrics.putTime.Add(float64(putDuration))
	c.updateSize()
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	start := time.Now()
	value, has := c.Store.Get(key)
	getDuration := time.Since(start)

	if has {
		c.metrics.getHitCount.Inc()
		c.metrics.getHitTime.Add(float64(getDuration))
	} else {
		c.metrics.getMissCount.Inc()
		c.metrics.getMissTime.Add(float64(getDuration))
	}

	return value, has
}

func (c *Cache[K, _]) Evict(key K) {
	c.Store.Evict(key)
	c.updateSize()
}

func (c *Cache[_, _]) Flush() {
	c.Store.Flush()
	c.updateSize()
}

func (c *Cache[_, _]) updateSize() {
	c.metrics.len.Set(float64(c.Store.Len()))
	if pf, ok := c.Store.(portionFiller); ok {
		c.metrics.portionFilled.Set(pf.PortionFilled())
	}
}
