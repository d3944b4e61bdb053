// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cachemanager

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cache "github.com/luxfi/namedcache"
)

type options struct {
	spec            *string
	config          *cache.Config
	allowNullValues *bool
	storeFactory    any
	names           []string
	static          bool
	logger          *zap.Logger
	registerer      prometheus.Registerer
	namespace       string
	clock           func() time.Time
}

func defaultOptions() *options {
	return &options{
		logger:    zap.NewNop(),
		namespace: "cache",
	}
}

// Option configures a Manager.
type Option func(*options)

// WithSpec configures every cache from a spec string, see cache.ParseSpec.
func WithSpec(spec string) Option {
	return func(o *options) {
		o.spec = &spec
	}
}

// WithConfig configures every cache from cfg. It takes precedence over
// WithSpec. cfg is checked with cache.Config.Validate by New.
func WithConfig(cfg cache.Config) Option {
	return func(o *options) {
		o.config = &cfg
	}
}

// WithAllowNullValues overrides whether caches accept nil values.
func WithAllowNullValues(allow bool) Option {
	return func(o *options) {
		o.allowNullValues = &allow
	}
}

// WithStoreFactory builds the store of every cache with factory instead of
// the configured lru policy. The factory key type must match the Manager's.
func WithStoreFactory[K comparable](factory StoreFactory[K]) Option {
	return func(o *options) {
		o.storeFactory = factory
	}
}

// WithCacheNames switches the manager to static mode: the named caches are
// created up front and no other cache is ever created.
func WithCacheNames(names ...string) Option {
	return func(o *options) {
		o.names = append(o.names, names...)
		o.static = true
	}
}

// WithLogger sets the logger used for cache lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer sets where metrics of caches configured with recordStats
// are registered.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

// WithNamespace sets the metrics namespace. Defaults to "cache".
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithClock sets the clock used by the default stores for expiration.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
