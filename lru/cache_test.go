package lru

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cache "github.com/luxfi/namedcache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestCache(t *testing.T) {
	require := require.New(t)

	cache := NewCache[string, string](3)

	// Test basic operations
	cache.Put("a", "apple")
	cache.Put("b", "banana")
	cache.Put("c", "cherry")

	require.Equal(3, cache.Len())
	require.Equal(1.0, cache.PortionFilled())

	// Test Get
	val, ok := cache.Get("a")
	require.True(ok)
	require.Equal("apple", val)

	// Test eviction
	cache.Put("d", "date")
	require.Equal(3, cache.Len()) // Should still be 3 after eviction

	// "b" was the least recently used after the Get of "a"
	_, ok = cache.Get("b")
	require.False(ok)
	_, ok = cache.Get("a")
	require.True(ok)

	// Test Flush
	cache.Flush()
	require.Equal(0, cache.Len())
	require.Equal(0.0, cache.PortionFilled())
}

func TestCacheWithEvictionCallback(t *testing.T) {
	require := require.New(t)

	evicted := make([]string, 0)
	p := Unbounded
	p.MaximumSize = 2
	cache := NewWithOnEvict[string, string](p, func(k, v string) {
		evicted = append(evicted, k)
	})

	cache.Put("x", "value-x")
	cache.Put("y", "value-y")
	cache.Put("z", "value-z") // Should evict 'x'

	require.Len(evicted, 1)
	require.Equal("x", evicted[0])
}

func TestCachePutOverwrites(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](Unbounded)
	cache.Put("k", 1)
	cache.Put("k", 2)

	val, ok := cache.Get("k")
	require.True(ok)
	require.Equal(2, val)
	require.Equal(1, cache.Len())
}

func TestCacheEvict(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](Unbounded)
	cache.Put("k", 1)
	cache.Evict("k")
	cache.Evict("missing")

	_, ok := cache.Get("k")
	require.False(ok)
	require.Zero(cache.Len())
}

func TestCacheZeroSizeKeepsNothing(t *testing.T) {
	require := require.New(t)

	cache := NewCache[string, int](0)
	cache.Put("k", 1)

	_, ok := cache.Get("k")
	require.False(ok)
	require.Zero(cache.Len())
	require.Zero(cache.PortionFilled())
}

func TestCacheExpireAfterWrite(t *testing.T) {
	require := require.New(t)

	clock := newFakeClock()
	p := Unbounded
	p.ExpireAfterWrite = 2 * time.Second
	p.Clock = clock.Now
	cache := New[string, string](p)

	cache.Put("key", "value")
	val, ok := cache.Get("key")
	require.True(ok)
	require.Equal("value", val)

	// Reads do not extend a write deadline.
	clock.Advance(time.Second)
	_, ok = cache.Get("key")
	require.True(ok)

	clock.Advance(2 * time.Second)
	_, ok = cache.Get("key")
	require.False(ok)
	require.Zero(cache.Len())
}

func TestCacheExpireAfterAccess(t *testing.T) {
	require := require.New(t)

	clock := newFakeClock()
	p := Unbounded
	p.ExpireAfterAccess = 2 * time.Second
	p.Clock = clock.Now
	cache := New[string, string](p)

	cache.Put("key", "value")
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		_, ok := cache.Get("key")
		require.True(ok)
	}

	clock.Advance(2 * time.Second)
	_, ok := cache.Get("key")
	require.False(ok)
}

func TestCacheZeroTTLExpiresImmediately(t *testing.T) {
	require := require.New(t)

	p := Unbounded
	p.ExpireAfterWrite = 0
	cache := New[string, string](p)
	cache.Put("key", "value")

	_, ok := cache.Get("key")
	require.False(ok)
}

func TestCacheCleanUpNotifies(t *testing.T) {
	require := require.New(t)

	clock := newFakeClock()
	p := Unbounded
	p.ExpireAfterWrite = time.Minute
	p.Clock = clock.Now

	var evicted []string
	cache := NewWithOnEvict[string, int](p, func(k string, _ int) {
		evicted = append(evicted, k)
	})
	cache.Put("a", 1)
	clock.Advance(30 * time.Second)
	cache.Put("b", 2)
	clock.Advance(30 * time.Second)

	cache.CleanUp()
	require.Equal([]string{"a"}, evicted)
	require.Equal(1, cache.Len())
}

func TestPolicyFrom(t *testing.T) {
	require := require.New(t)

	cfg, err := cache.ParseSpec("maximumSize=10,expireAfterAccess=5m,initialCapacity=4")
	require.NoError(err)

	p := PolicyFrom(cfg)
	require.Equal(10, p.MaximumSize)
	require.Equal(5*time.Minute, p.ExpireAfterAccess)
	require.Equal(time.Duration(-1), p.ExpireAfterWrite)
	require.Equal(4, p.InitialCapacity)

	require.Equal(Unbounded, PolicyFrom(cache.DefaultConfig()))
}

func TestCacheConcurrentAccess(t *testing.T) {
	require := require.New(t)

	cache := NewCache[int, int](64)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				cache.Put(i%128, w)
				cache.Get(i % 128)
				if i%100 == 0 {
					cache.Evict(i % 128)
				}
			}
		}(w)
	}
	wg.Wait()

	require.LessOrEqual(cache.Len(), 64)
}
