// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lru provides the reference evicting store: a least recently used
// cache with optional size and time bounds.
package lru

import (
	"container/list"
	"sync"
	"time"

	cache "github.com/luxfi/namedcache"
)

var _ cache.Store[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Policy bounds the entries held by a Cache. A negative value disables the
// corresponding bound; zero is a legal bound that evicts entries immediately.
type Policy struct {
	MaximumSize       int
	ExpireAfterWrite  time.Duration
	ExpireAfterAccess time.Duration

	// InitialCapacity presizes the entry table.
	InitialCapacity int

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Unbounded is a Policy with no size or time bound.
var Unbounded = Policy{MaximumSize: -1, ExpireAfterWrite: -1, ExpireAfterAccess: -1}

// PolicyFrom converts a cache.Config into a Policy.
func PolicyFrom(cfg cache.Config) Policy {
	p := Unbounded
	if cfg.MaximumSize != nil {
		p.MaximumSize = int(*cfg.MaximumSize)
	}
	if cfg.ExpireAfterWrite != nil {
		p.ExpireAfterWrite = *cfg.ExpireAfterWrite
	}
	if cfg.ExpireAfterAccess != nil {
		p.ExpireAfterAccess = *cfg.ExpireAfterAccess
	}
	if cfg.InitialCapacity != nil {
		p.InitialCapacity = *cfg.InitialCapacity
	}
	return p
}

// entry is a cache entry.
type entry[K comparable, V any] struct {
	key      K
	value    V
	written  time.Time
	accessed time.Time
}

// Cache is a thread-safe LRU cache.
//
// Expired entries are removed lazily: they are reported absent by Get and
// dropped on the next access or CleanUp.
type Cache[K comparable, V any] struct {
	lock     sync.Mutex
	policy   Policy
	now      func() time.Time
	onEvict  func(K, V)
	elements map[K]*list.Element
	order    *list.List
}

// NewCache creates a new LRU cache holding at most size entries.
func NewCache[K comparable, V any](size int) *Cache[K, V] {
	p := Unbounded
	p.MaximumSize = size
	return New[K, V](p)
}

// New creates a new LRU cache bounded by policy.
func New[K comparable, V any](policy Policy) *Cache[K, V] {
	return NewWithOnEvict[K, V](policy, nil)
}

// NewWithOnEvict creates a cache that calls onEvict for every entry removed
// because of its size or time bounds. Explicit Evict and Flush calls do not
// trigger it. The callback runs after the cache lock is released.
func NewWithOnEvict[K comparable, V any](policy Policy, onEvict func(K, V)) *Cache[K, V] {
	now := policy.Clock
	if now == nil {
		now = time.Now
	}
	capacity := policy.InitialCapacity
	if capacity < 0 {
		capacity = 0
	}
	return &Cache[K, V]{
		policy:   policy,
		now:      now,
		onEvict:  onEvict,
		elements: make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// Put inserts an element into the cache.
func (c *Cache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	now := c.now()

	if elem, ok := c.elements[key]; ok {
		// Update existing entry
		e := elem.Value.(*entry[K, V])
		e.value = value
		e.written = now
		e.accessed = now
		c.order.MoveToFront(elem)
	} else {
		e := &entry[K, V]{key: key, value: value, written: now, accessed: now}
		c.elements[key] = c.order.PushFront(e)
	}

	var evicted []*entry[K, V]
	if c.policy.MaximumSize >= 0 {
		for c.order.Len() > c.policy.MaximumSize {
			evicted = append(evicted, c.removeElement(c.order.Back()))
		}
	}
	c.lock.Unlock()

	c.notify(evicted)
}

// Get returns the entry with the key, if it exists and has not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	elem, ok := c.elements[key]
	if !ok {
		c.lock.Unlock()
		var zero V
		return zero, false
	}

	now := c.now()
	e := elem.Value.(*entry[K, V])
	if c.expired(e, now) {
		c.removeElement(elem)
		c.lock.Unlock()
		c.notify([]*entry[K, V]{e})
		var zero V
		return zero, false
	}

	e.accessed = now
	c.order.MoveToFront(elem)
	value := e.value
	c.lock.Unlock()
	return value, true
}

// Evict removes the specified entry from the cache.
func (c *Cache[K, V]) Evict(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.removeElement(elem)
	}
}

// Flush removes all entries from the cache.
func (c *Cache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.elements = make(map[K]*list.Element)
	c.order.Init()
}

// Len returns the number of elements in the cache, including expired entries
// that were not cleaned up yet.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.order.Len()
}

// CleanUp removes every expired entry.
func (c *Cache[K, V]) CleanUp() {
	if c.policy.ExpireAfterWrite < 0 && c.policy.ExpireAfterAccess < 0 {
		return
	}

	c.lock.Lock()
	now := c.now()
	var evicted []*entry[K, V]
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if e := elem.Value.(*entry[K, V]); c.expired(e, now) {
			evicted = append(evicted, c.removeElement(elem))
		}
		elem = prev
	}
	c.lock.Unlock()

	c.notify(evicted)
}

// PortionFilled returns fraction of cache currently filled. Unbounded caches
// always report 0.
func (c *Cache[K, V]) PortionFilled() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.policy.MaximumSize <= 0 {
		return 0
	}
	return float64(c.order.Len()) / float64(c.policy.MaximumSize)
}

func (c *Cache[K, V]) expired(e *entry[K, V], now time.Time) bool {
	if c.policy.ExpireAfterWrite >= 0 && now.Sub(e.written) >= c.policy.ExpireAfterWrite {
		return true
	}
	return c.policy.ExpireAfterAccess >= 0 && now.Sub(e.accessed) >= c.policy.ExpireAfterAccess
}

func (c *Cache[K, V]) removeElement(elem *list.Element) *entry[K, V] {
	e := elem.Value.(*entry[K, V])
	delete(c.elements, e.key)
	c.order.Remove(elem)
	return e
}

func (c *Cache[K, V]) notify(evicted []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value)
	}
}
