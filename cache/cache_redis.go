package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

type RedisCacheStore struct {
	Client *redis.Client
	Data   *cache.Cache
	TTL    time.Duration
}

var _ CacheStore = (*RedisCacheStore)(nil)

// NewRedisCacheStore connects to redisURL and layers a small local LFU in front of it.
func NewRedisCacheStore(redisURL string, localSize int, ttl time.Duration) (*RedisCacheStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return newRedisCacheStore(rdb, localSize, ttl), nil
}

func newRedisCacheStore(rdb *redis.Client, localSize int, ttl time.Duration) *RedisCacheStore {
	// the local tier keeps entries for at most a minute so that other shards see purges quickly
	localTTL := ttl
	if localTTL > time.Minute {
		localTTL = time.Minute
	}
	data := cache.New(&cache.Options{
		Redis:      rdb,
		LocalCache: cache.NewTinyLFU(localSize, localTTL),
	})
	return &RedisCacheStore{
		Client: rdb,
		Data:   data,
		TTL:    ttl,
	}
}

func redisCacheKey(name, key string) string {
	return "peacebot/" + name + "/" + key
}

func (s *RedisCacheStore) Get(ctx context.Context, name, key string) (string, error) {
	var val string
	err := s.Data.Get(ctx, redisCacheKey(name, key), &val)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisCacheStore) Set(ctx context.Context, name, key string, val string) error {
	return s.Data.Set(&cache.Item{
		Ctx:   ctx,
		Key:   redisCacheKey(name, key),
		Value: val,
		TTL:   s.TTL,
	})
}

func (s *RedisCacheStore) Purge(ctx context.Context, name, key string) error {
	err := s.Data.Delete(ctx, redisCacheKey(name, key))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (s *RedisCacheStore) Close() error {
	return s.Client.Close()
}
