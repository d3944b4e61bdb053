// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import "github.com/jmgilman/go/errors"

var _ Cache[struct{}] = (*ValueCache[struct{}])(nil)

// ValueCache is a named Cache that adapts nil user values before handing them
// to its Store. When nil values are allowed they are stored as a marker and
// translated back on Get.
//
// ValueCache adds no locking of its own; all synchronization is provided by
// the wrapped Store.
type ValueCache[K comparable] struct {
	name            string
	store           Store[K, any]
	allowNullValues bool
}

// NewValueCache wraps store under the given name.
func NewValueCache[K comparable](name string, store Store[K, any], allowNullValues bool) (*ValueCache[K], error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, errors.CodeInvalidInput, "name is required")
	}
	if store == nil {
		return nil, errors.Wrap(ErrInvalidArgument, errors.CodeInvalidInput, "store is required")
	}
	return &ValueCache[K]{
		name:            name,
		store:           store,
		allowNullValues: allowNullValues,
	}, nil
}

// Name returns the name of the cache.
func (c *ValueCache[K]) Name() string {
	return c.name
}

// NativeStore returns the wrapped store.
func (c *ValueCache[K]) NativeStore() Store[K, any] {
	return c.store
}

// AllowNullValues reports whether nil values are accepted by Put.
func (c *ValueCache[K]) AllowNullValues() bool {
	return c.allowNullValues
}

// Get returns the user value stored for key. A stored nil is reported as
// (nil, true).
func (c *ValueCache[K]) Get(key K) (any, bool) {
	value, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	return c.fromStoreValue(value), true
}

// Lookup returns the raw store value for key, without translating the nil
// marker; see IsNull.
func (c *ValueCache[K]) Lookup(key K) (any, bool) {
	return c.store.Get(key)
}

// Put stores value under key. A nil value is rejected with ErrInvalidArgument
// when the cache does not allow nil values.
func (c *ValueCache[K]) Put(key K, value any) error {
	storeValue, err := c.toStoreValue(value)
	if err != nil {
		return err
	}
	c.store.Put(key, storeValue)
	return nil
}

// Evict removes key from the cache. Evicting an absent key is a no-op.
func (c *ValueCache[K]) Evict(key K) {
	c.store.Evict(key)
}

// Clear removes all entries.
func (c *ValueCache[K]) Clear() {
	c.store.Flush()
}

func (c *ValueCache[K]) fromStoreValue(value any) any {
	if c.allowNullValues && IsNull(value) {
		return nil
	}
	return value
}

func (c *ValueCache[K]) toStoreValue(value any) (any, error) {
	if value != nil {
		return value, nil
	}
	if !c.allowNullValues {
		return nil, errors.Wrapf(ErrInvalidArgument, errors.CodeInvalidInput,
			"cache %q is configured to not allow nil values", c.name)
	}
	return nullMarker, nil
}
