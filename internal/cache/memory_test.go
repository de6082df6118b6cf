package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestMemoryCache(t *testing.T, cfg Config) (*MemoryCache, *fakeClock) {
	t.Helper()

	c, err := NewMemoryCache(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clock.Now

	return c, clock
}

func TestMemoryCache_SetGet(t *testing.T) {
	c, _ := newTestMemoryCache(t, Config{})
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "ALFKI")
	assert.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Set(ctx, "ALFKI", []byte("alfreds"), time.Minute))

	value, ok, err := c.Get(ctx, "ALFKI")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("alfreds"), value)
}

func TestMemoryCache_SlidingExpiration(t *testing.T) {
	c, clock := newTestMemoryCache(t, Config{})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ANATR", []byte("ana"), 60*time.Second))

	// every read within the window pushes the deadline forward
	for range 5 {
		clock.Advance(45 * time.Second)
		_, ok, _ := c.Get(ctx, "ANATR")
		assert.True(t, ok, "entry should survive while it is being read")
	}

	clock.Advance(60 * time.Second)
	_, ok, _ := c.Get(ctx, "ANATR")
	assert.False(t, ok, "entry should expire after a full idle window")
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on read")
}

func TestMemoryCache_NoExpiration(t *testing.T) {
	c, clock := newTestMemoryCache(t, Config{})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "BERGS", []byte("berglunds"), 0))
	clock.Advance(24 * time.Hour)

	_, ok, _ := c.Get(ctx, "BERGS")
	assert.True(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	c, _ := newTestMemoryCache(t, Config{})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "BLAUS", []byte("blauer"), time.Minute))
	require.NoError(t, c.Delete(ctx, "BLAUS"))
	require.NoError(t, c.Delete(ctx, "missing"))

	_, ok, _ := c.Get(ctx, "BLAUS")
	assert.False(t, ok)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestMemoryCache(t, Config{MaxEntries: 2})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Minute))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCache_Sweep(t *testing.T) {
	c, clock := newTestMemoryCache(t, Config{})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("1"), 10*time.Second))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "forever", []byte("3"), 0))

	clock.Advance(time.Minute)

	assert.Equal(t, 1, c.sweep())
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCache_JanitorJob(t *testing.T) {
	c, err := NewMemoryCache(Config{JanitorInterval: 20})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, c.Set(ctx, "FRANK", []byte("frankenversand"), 10*time.Millisecond))
	c.StartJanitor(ctx)
	defer c.Close()

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond, "janitor should sweep the expired entry")
}
