// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cachemanager

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cache "github.com/luxfi/namedcache"
	"github.com/luxfi/namedcache/metercacher"
)

// Factory builds a single named cache from properties set one at a time, for
// hosts that configure components through setters before initializing them.
//
// Properties are read once, by the first successful AfterPropertiesSet.
// Changing them afterwards has no effect on the built cache.
type Factory[K comparable] struct {
	lock            sync.Mutex
	name            string
	spec            string
	allowNullValues bool
	registerer      prometheus.Registerer
	log             *zap.Logger

	cache *cache.ValueCache[K]
}

// NewFactory returns a Factory that allows nil values and uses the default
// spec.
func NewFactory[K comparable]() *Factory[K] {
	return &Factory[K]{
		allowNullValues: true,
		log:             zap.NewNop(),
	}
}

// SetName sets the name of the cache. It is required.
func (f *Factory[K]) SetName(name string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.name = name
}

// Name returns the configured cache name.
func (f *Factory[K]) Name() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.name
}

// SetSpec sets the spec string the cache is built from, see cache.ParseSpec.
func (f *Factory[K]) SetSpec(spec string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.spec = spec
}

// Spec returns the configured spec string.
func (f *Factory[K]) Spec() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.spec
}

// SetAllowNullValues sets whether the cache accepts nil values.
func (f *Factory[K]) SetAllowNullValues(allow bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.allowNullValues = allow
}

// AllowNullValues reports whether the cache will accept nil values.
func (f *Factory[K]) AllowNullValues() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.allowNullValues
}

// SetRegisterer sets where metrics are registered when the spec contains
// recordStats.
func (f *Factory[K]) SetRegisterer(registerer prometheus.Registerer) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.registerer = registerer
}

// SetLogger sets the logger used when the cache is built.
func (f *Factory[K]) SetLogger(logger *zap.Logger) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.log = logger
}

// AfterPropertiesSet builds the cache from the current properties. Only the
// first successful call builds anything; later calls return nil. A failed
// call leaves the factory unbuilt so that it can be retried.
func (f *Factory[K]) AfterPropertiesSet() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.cache != nil {
		return nil
	}

	cfg, err := cache.ParseSpec(f.spec)
	if err != nil {
		return err
	}
	cfg.DisallowNullValues = !f.allowNullValues

	var metrics *metercacher.Metrics
	if cfg.RecordStats {
		registerer := f.registerer
		if registerer == nil {
			registerer = prometheus.NewRegistry()
		}
		metrics, err = metercacher.NewMetrics("cache", registerer)
		if err != nil {
			return err
		}
	}

	c, err := newValueCache(f.name, lruStoreFactory[K](cfg, metrics, nil), metrics, f.allowNullValues)
	if err != nil {
		return err
	}
	f.cache = c
	f.log.Debug("created cache",
		zap.String("name", f.name),
		zap.Stringer("config", cfg),
	)
	return nil
}

// Object returns the built cache, or nil before AfterPropertiesSet succeeded.
// Every call returns the same instance.
func (f *Factory[K]) Object() *cache.ValueCache[K] {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.cache
}
