package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0x0FACED/zlog"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cache:"

// RedisCache is a distributed Cache. Each entry is a hash holding the value
// and its sliding window, so a read can re-arm the expiry in one round trip.
type RedisCache struct {
	cl            *redis.Client
	fallbackInMem *MemoryCache // used while redis is not responding, may be nil
	logger        *zlog.ZerologLogger
}

func NewRedisCache(
	client *redis.Client,
	inMem *MemoryCache,
	log *zlog.ZerologLogger,
) *RedisCache {
	return &RedisCache{
		cl:            client,
		fallbackInMem: inMem,
		logger:        log,
	}
}

// Reads the value and, if the entry carries a window, pushes its expiry
// forward by that window. Returns nil for a missing key.
var getScript = redis.NewScript(`
local key = KEYS[1]

local value = redis.call('HGET', key, 'value')
if value == false then
	return false
end

local window = tonumber(redis.call('HGET', key, 'window'))
if window ~= nil and window > 0 then
	redis.call('PEXPIRE', key, window)
end

return value
`)

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := getScript.Run(ctx, c.cl, []string{redisKey(key)}).Text()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		if c.fallbackInMem != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("[RedisCache] get failed, using in-memory fallback")
			return c.fallbackInMem.Get(ctx, key)
		}
		return nil, false, err
	}

	return []byte(value), true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, sliding time.Duration) error {
	k := redisKey(key)

	_, err := c.cl.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k, "value", value, "window", sliding.Milliseconds())
		if sliding > 0 {
			pipe.PExpire(ctx, k, sliding)
		}
		return nil
	})
	if err != nil {
		if c.fallbackInMem != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("[RedisCache] set failed, using in-memory fallback")
			return c.fallbackInMem.Set(ctx, key, value, sliding)
		}
		return err
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	// the fallback may hold a copy written during an outage
	if c.fallbackInMem != nil {
		_ = c.fallbackInMem.Delete(ctx, key)
	}

	if err := c.cl.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// StartJanitor sweeps the in-memory fallback, redis expires keys by itself.
func (c *RedisCache) StartJanitor(ctx context.Context) {
	if c.fallbackInMem != nil {
		c.fallbackInMem.StartJanitor(ctx)
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.cl.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	if c.fallbackInMem != nil {
		_ = c.fallbackInMem.Close()
	}

	if c.cl != nil {
		return c.cl.Close()
	}

	return nil
}

func redisKey(key string) string {
	return fmt.Sprintf("%s%s", keyPrefix, key)
}
