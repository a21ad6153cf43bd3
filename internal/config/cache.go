package config

import (
	"os"
	"strconv"
	"time"
)

// LookupCacheConfig defines settings for caching catalog lookups in Redis.
// When Enabled is false or no Redis client is configured, every add-movie
// goes straight to the catalog service.  TTL defines the lifetime of cache
// entries and Prefix namespaces the keys.
type LookupCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadLookupCacheConfig reads environment variables to build a
// LookupCacheConfig.  Defaults are used when variables are not set.
func LoadLookupCacheConfig() LookupCacheConfig {
	cfg := LookupCacheConfig{
		Enabled: getenv("LOOKUP_CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("LOOKUP_CACHE_TTL", "24h")),
		Prefix:  getenv("LOOKUP_CACHE_PREFIX", "omdb"),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return cfg
}

// Helper functions reused from redis.go and ratelimit.go
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
