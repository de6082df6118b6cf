package cache

import (
	"context"
	"time"
)

type Type string

const (
	Memory Type = "memory"
	Redis  Type = "redis"
)

// Cache is a byte-oriented key-value store with sliding expiration.
// Every successful Get re-arms the entry's idle window; an entry that is not
// read for a whole window is gone.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. A non-positive sliding window keeps the
	// entry until it is deleted or evicted.
	Set(ctx context.Context, key string, value []byte, sliding time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
