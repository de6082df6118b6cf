package customer

import "time"

const DefaultCacheTTL = 60 * time.Second

type Config struct {
	// CacheTTL is the sliding expiration of Find results in milliseconds.
	CacheTTL int `json:"cache_ttl"`
	// InvalidateOnWrite drops the cached copy on Update and Remove. Without it
	// a cached customer can be served stale for up to one window after a write.
	InvalidateOnWrite bool             `json:"invalidate_on_write"`
	Pagination        PaginationConfig `json:"pagination"`
}

func (c Config) cacheTTL() time.Duration {
	if c.CacheTTL <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.CacheTTL) * time.Millisecond
}
