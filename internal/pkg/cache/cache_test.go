package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

func TestUnifiedCacheHitMiss(t *testing.T) {
	c := NewUnifiedCache[string](time.Minute, "test", nil)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, c.Size())

	assert.Equal(t, CacheMetrics{Hits: 1, Misses: 1, Sets: 1}, c.GetMetrics())
}

func TestUnifiedCacheExpiry(t *testing.T) {
	c := NewUnifiedCache[int](20*time.Millisecond, "short", nil)
	c.Set("k", 1)
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestContentKey(t *testing.T) {
	a := ContentKey([]byte("ab"), []byte("c"))
	b := ContentKey([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ContentKey([]byte("ab"), []byte("c")))
	assert.Len(t, a, 64)

	// sha256 of each blob prefixed by its little-endian uint64 length
	assert.Equal(t, "43ee655579de01ca739b3f95c1c2d3f46d353b2c0df818064ea594506cdb2617", a)
	assert.NotEqual(t, ContentKey(), ContentKey([]byte{}))
}

func TestCacheManager(t *testing.T) {
	cm := NewCacheManager(0, nil)
	cm.Extractions.Set("x", &models.ItineraryData{Title: "제주"})

	got, ok := cm.Extractions.Get("x")
	require.True(t, ok)
	assert.Equal(t, "제주", got.Title)
	assert.Equal(t, int64(1), cm.GetAllMetrics()["extractions"].Hits)
}
