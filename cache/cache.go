package cache

import (
	"context"
	"fmt"
	"time"

	"peacebot/model"
)

// CacheStore returns an empty string and no error on a miss.
type CacheStore interface {
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	defaultSize = 10_000
	defaultTTL  = 30 * time.Minute
)

// New builds the configured backend.
func New(cfg model.CacheConfig, redisURL string) (CacheStore, error) {
	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemCacheStore(size, ttl), nil
	case BackendRedis:
		return NewRedisCacheStore(redisURL, size, ttl)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
