package omdb

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/s9096309/movie-shelf/internal/config"
)

// RedisCache keeps successful catalog bodies in Redis for cfg.TTL.
type RedisCache struct {
	rdb *redis.Client
	cfg config.LookupCacheConfig
}

// NewRedisCache returns nil when caching is disabled or no client is
// configured. Callers must check for nil before passing it to WithCache.
func NewRedisCache(cfg config.LookupCacheConfig, rdb *redis.Client) *RedisCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &RedisCache{rdb: rdb, cfg: cfg}
}

func (c *RedisCache) key(title string) string {
	return c.cfg.Prefix + ":title:" + strings.ToLower(strings.TrimSpace(title))
}

func (c *RedisCache) Get(ctx context.Context, title string) ([]byte, bool) {
	bs, err := c.rdb.Get(ctx, c.key(title)).Bytes()
	if err != nil {
		return nil, false
	}
	return bs, true
}

func (c *RedisCache) Set(ctx context.Context, title string, body []byte) {
	if err := c.rdb.Set(ctx, c.key(title), body, c.cfg.TTL).Err(); err != nil {
		log.Printf("omdb cache: set %q failed: %v", title, err)
	}
}
