// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cachemanager hands out named caches, creating each one on first
// request from a shared configuration.
package cachemanager

import (
	"sort"
	"sync"

	"github.com/jmgilman/go/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cache "github.com/luxfi/namedcache"
	"github.com/luxfi/namedcache/metercacher"
)

// Manager maps cache names to caches.
//
// In dynamic mode a cache is created the first time its name is requested and
// is then returned on every later request. Creation is serialized by a single
// lock, so exactly one store is built per name; lookups of existing caches
// never take that lock. In static mode, selected with WithCacheNames, the
// listed caches are created by New and no cache is created afterwards.
//
// Caches are never removed from a Manager.
type Manager[K comparable] struct {
	caches sync.Map // string -> *cache.ValueCache[K]

	createLock      sync.Mutex
	dynamic         bool
	config          cache.Config
	allowNullValues bool
	newStore        StoreFactory[K]
	metrics         *metercacher.Metrics
	log             *zap.Logger
}

// New creates a Manager. It fails with cache.ErrInvalidFormat if the
// configured spec cannot be parsed and with cache.ErrInvalidArgument if a
// config set with WithConfig is invalid, a static cache name is empty or the
// store factory has the wrong key type.
func New[K comparable](opts ...Option) (*Manager[K], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cfg := cache.DefaultConfig()
	switch {
	case o.config != nil:
		if err := o.config.Validate(); err != nil {
			return nil, err
		}
		cfg = *o.config
	case o.spec != nil:
		parsed, err := cache.ParseSpec(*o.spec)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	}
	if o.allowNullValues != nil {
		cfg.DisallowNullValues = !*o.allowNullValues
	}

	m := &Manager[K]{
		dynamic:         !o.static,
		config:          cfg,
		allowNullValues: cfg.AllowNullValues(),
		log:             o.logger,
	}

	if cfg.RecordStats {
		registerer := o.registerer
		if registerer == nil {
			registerer = prometheus.NewRegistry()
		}
		metrics, err := metercacher.NewMetrics(o.namespace, registerer)
		if err != nil {
			return nil, err
		}
		m.metrics = metrics
	}

	switch factory := o.storeFactory.(type) {
	case nil:
		m.newStore = lruStoreFactory[K](cfg, m.metrics, o.clock)
	case StoreFactory[K]:
		m.newStore = factory
	default:
		return nil, errors.Wrapf(cache.ErrInvalidArgument, errors.CodeInvalidInput,
			"store factory %T does not match the manager key type", factory)
	}

	for _, name := range o.names {
		if _, ok := m.caches.Load(name); ok {
			continue
		}
		c, err := m.createCache(name)
		if err != nil {
			return nil, err
		}
		m.caches.Store(name, c)
	}

	m.log.Debug("created cache manager",
		zap.Bool("dynamic", m.dynamic),
		zap.Stringer("config", cfg),
		zap.Int("caches", len(o.names)),
	)
	return m, nil
}

// GetCache returns the cache with the given name. In dynamic mode it is
// created on first request. It returns false for the empty name and, in
// static mode, for names that were not listed.
//
// GetCache panics if the store factory returns a nil store.
func (m *Manager[K]) GetCache(name string) (*cache.ValueCache[K], bool) {
	if c, ok := m.caches.Load(name); ok {
		return c.(*cache.ValueCache[K]), true
	}
	if !m.dynamic || name == "" {
		m.log.Debug("cache not found",
			zap.String("name", name),
			zap.Bool("dynamic", m.dynamic),
		)
		return nil, false
	}

	m.createLock.Lock()
	defer m.createLock.Unlock()

	if c, ok := m.caches.Load(name); ok {
		return c.(*cache.ValueCache[K]), true
	}
	c, err := m.createCache(name)
	if err != nil {
		panic(err)
	}
	m.caches.Store(name, c)
	return c, true
}

// CacheNames returns the sorted names of the caches created so far.
func (m *Manager[K]) CacheNames() []string {
	var names []string
	m.caches.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Dynamic reports whether caches are created on demand.
func (m *Manager[K]) Dynamic() bool {
	return m.dynamic
}

// Config returns the configuration caches are created from.
func (m *Manager[K]) Config() cache.Config {
	return m.config
}

func (m *Manager[K]) createCache(name string) (*cache.ValueCache[K], error) {
	c, err := newValueCache(name, m.newStore, m.metrics, m.allowNullValues)
	if err != nil {
		return nil, err
	}
	m.log.Debug("created cache",
		zap.String("name", name),
		zap.Bool("allowNullValues", m.allowNullValues),
	)
	return c, nil
}
