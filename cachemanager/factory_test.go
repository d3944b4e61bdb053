package cachemanager

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	cache "github.com/luxfi/namedcache"
)

func TestFactoryDefaultConfig(t *testing.T) {
	require := require.New(t)

	f := NewFactory[string]()
	require.True(f.AllowNullValues())
	require.Nil(f.Object())

	f.SetName("default")
	require.NoError(f.AfterPropertiesSet())

	c := f.Object()
	require.NotNil(c)
	require.Equal("default", c.Name())

	require.NoError(c.Put("key1", "element1"))
	require.NoError(c.Put("key2", "element2"))
	val, ok := c.Get("key1")
	require.True(ok)
	require.Equal("element1", val)

	require.NoError(c.Put("key3", nil))
	val, ok = c.Get("key3")
	require.True(ok)
	require.Nil(val)
}

func TestFactoryCustomConfig(t *testing.T) {
	require := require.New(t)

	f := NewFactory[string]()
	f.SetName("cacheName")
	f.SetAllowNullValues(true)
	f.SetSpec("maximumSize=3")
	require.Equal("cacheName", f.Name())
	require.Equal("maximumSize=3", f.Spec())
	require.NoError(f.AfterPropertiesSet())

	c := f.Object()
	require.Equal("cacheName", c.Name())
	require.True(c.AllowNullValues())

	for _, k := range []string{"key1", "key2", "key3", "key4"} {
		require.NoError(c.Put(k, k))
	}
	require.Equal(3, c.NativeStore().Len())

	require.NoError(c.Put("key", nil))
	raw, ok := c.Lookup("key")
	require.True(ok)
	require.True(cache.IsNull(raw))
}

func TestFactorySingleton(t *testing.T) {
	require := require.New(t)

	f := NewFactory[string]()
	f.SetName("single")
	require.NoError(f.AfterPropertiesSet())
	c1 := f.Object()

	// later property changes and init calls do not rebuild
	f.SetSpec("maximumSize=1")
	f.SetName("renamed")
	require.NoError(f.AfterPropertiesSet())
	c2 := f.Object()

	require.Same(c1, c2)
	require.Equal("single", c2.Name())
}

func TestFactoryErrors(t *testing.T) {
	require := require.New(t)

	f := NewFactory[string]()
	require.ErrorIs(f.AfterPropertiesSet(), cache.ErrInvalidArgument)
	require.Nil(f.Object())

	f.SetName("name")
	f.SetSpec("maximumSize=abc")
	require.ErrorIs(f.AfterPropertiesSet(), cache.ErrInvalidFormat)
	require.Nil(f.Object())

	// a failed initialization can be retried
	f.SetSpec("maximumSize=10")
	require.NoError(f.AfterPropertiesSet())
	require.NotNil(f.Object())
}

func TestFactoryDisallowNullValues(t *testing.T) {
	require := require.New(t)

	f := NewFactory[string]()
	f.SetName("strict")
	f.SetAllowNullValues(false)
	require.NoError(f.AfterPropertiesSet())

	require.ErrorIs(f.Object().Put("key", nil), cache.ErrInvalidArgument)
}

func TestFactoryRecordStats(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	f := NewFactory[string]()
	f.SetName("metered")
	f.SetSpec("recordStats")
	f.SetRegisterer(registry)
	require.NoError(f.AfterPropertiesSet())

	require.NoError(f.Object().Put("k", "v"))

	count, err := testutil.GatherAndCount(registry, "cache_put_count")
	require.NoError(err)
	require.Equal(1, count)
}
