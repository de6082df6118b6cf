package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultMaxEntries      = 10_000
	DefaultJanitorInterval = 30 * time.Second
)

type entry struct {
	value      []byte
	sliding    time.Duration
	lastAccess time.Time
}

func (e *entry) expired(now time.Time) bool {
	return e.sliding > 0 && now.Sub(e.lastAccess) >= e.sliding
}

// MemoryCache is an in-process Cache bounded by an LRU. Expired entries are
// dropped on read and swept by the janitor job.
type MemoryCache struct {
	entries  *lru.Cache[string, *entry]
	interval time.Duration
	now      func() time.Time

	janitorCancel context.CancelFunc
	mu            sync.Mutex
}

func NewMemoryCache(cfg Config) (*MemoryCache, error) {
	size := cfg.MaxEntries
	if size <= 0 {
		size = DefaultMaxEntries
	}

	entries, err := lru.New[string, *entry](size)
	if err != nil {
		return nil, err
	}

	interval := time.Duration(cfg.JanitorInterval) * time.Millisecond
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}

	return &MemoryCache{
		entries:  entries,
		interval: interval,
		now:      time.Now,
	}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}

	now := c.now()
	if e.expired(now) {
		c.entries.Remove(key)
		return nil, false, nil
	}

	e.lastAccess = now
	return e.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, sliding time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(key, &entry{
		value:      value,
		sliding:    sliding,
		lastAccess: c.now(),
	})

	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// StartJanitor periodically removes expired entries until ctx is done or the
// cache is closed.
func (c *MemoryCache) StartJanitor(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.janitorCancel = cancel
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *MemoryCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for _, key := range c.entries.Keys() {
		e, ok := c.entries.Peek(key)
		if ok && e.expired(now) {
			c.entries.Remove(key)
			removed++
		}
	}

	return removed
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	cancel := c.janitorCancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.entries.Purge()
	return nil
}
