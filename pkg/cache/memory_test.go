package cache

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"arcana/internal/config"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	config.AppConfig = &config.Config{}
	config.AppConfig.Cache.Enabled = true
	config.AppConfig.Cache.MaxCapacity = 10 // MB
	config.AppConfig.Cache.TTL = "30m"
	return New()
}

func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t)

	c.Set("card:jack", []byte("png-bytes"))

	got, ok := c.Get("card:jack")
	assert.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), got)

	_, ok = c.Get("card:missing")
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)

	c.Set("card:jack", []byte("png-bytes"))
	c.Delete("card:jack")

	_, ok := c.Get("card:jack")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.totalSize)
}

func TestCacheOverwriteAccounting(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", bytes.Repeat([]byte{1}, 100))
	c.Set("k", bytes.Repeat([]byte{2}, 300))

	assert.Equal(t, int64(300), c.totalSize)
}

func TestCacheSkipsOversizedItems(t *testing.T) {
	c := newTestCache(t)

	c.Set("huge", bytes.Repeat([]byte{1}, MaxItemSize+1))

	_, ok := c.Get("huge")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.totalSize)
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	c.ttl = 10 * time.Millisecond

	c.Set("k", []byte("v"))
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCachePruneMakesRoom(t *testing.T) {
	c := newTestCache(t)
	c.maxSize = 1000

	// Three items with ascending expiry: oldest-expiring get pruned.
	c.Set("a", bytes.Repeat([]byte{1}, 400))
	c.Set("b", bytes.Repeat([]byte{1}, 400))
	c.Set("c", bytes.Repeat([]byte{1}, 400))

	assert.LessOrEqual(t, c.totalSize, int64(1000))

	_, ok := c.Get("c")
	assert.True(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.Cache.Enabled = false
	config.AppConfig.Cache.MaxCapacity = 10
	config.AppConfig.Cache.TTL = "30m"
	c := New()

	c.Set("k", []byte("v"))
	_, ok := c.Get("k")
	assert.False(t, ok)
}
