package proposal

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateCacheLRU(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 2})
	a, b, c := &Template{name: "a"}, &Template{name: "b"}, &Template{name: "c"}

	cache.Set("a", a)
	cache.Set("b", b)
	got, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Same(t, a, got)

	// b is now the least recently used entry.
	cache.Set("c", c)
	assert.Equal(t, 2, cache.Size())
	_, ok = cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)

	cache.Set("a", c)
	got, _ = cache.Get("a")
	assert.Same(t, c, got)
	assert.Equal(t, 2, cache.Size())

	cache.Remove("a")
	assert.Equal(t, 1, cache.Size())
	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestTemplateCacheTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 4, TTL: time.Minute})
	cache.now = func() time.Time { return now }

	cache.Set("a", &Template{name: "a"})
	now = now.Add(30 * time.Second)
	_, ok := cache.Get("a")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}

func TestTemplateCacheDisabled(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 0})
	cache.Set("a", &Template{name: "a"})
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestTemplateCacheConcurrent(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 8})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("t%d", i%10)
			cache.Set(key, &Template{name: key})
			cache.Get(key)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, cache.Size(), 8)
}
