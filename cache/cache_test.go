package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peacebot/model"
)

func exerciseStore(t *testing.T, s CacheStore) {
	t.Helper()
	ctx := context.Background()

	v, err := s.Get(ctx, "prefix", "100")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set(ctx, "prefix", "100", "?"))
	v, err = s.Get(ctx, "prefix", "100")
	require.NoError(t, err)
	assert.Equal(t, "?", v)

	// names are separate namespaces
	v, err = s.Get(ctx, "other", "100")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Purge(ctx, "prefix", "100"))
	v, err = s.Get(ctx, "prefix", "100")
	require.NoError(t, err)
	assert.Empty(t, v)

	// purging a missing key is fine
	assert.NoError(t, s.Purge(ctx, "prefix", "404"))
}

func TestMemCacheStore(t *testing.T) {
	exerciseStore(t, NewMemCacheStore(16, time.Minute))
}

func TestMemCacheStore_Expires(t *testing.T) {
	s := NewMemCacheStore(16, 10*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "prefix", "100", "?"))
	time.Sleep(50 * time.Millisecond)
	v, err := s.Get(ctx, "prefix", "100")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return client, mr
}

func TestRedisCacheStore(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	exerciseStore(t, newRedisCacheStore(client, 100, time.Minute))
}

func TestRedisCacheStore_SharedAcrossInstances(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()
	ctx := context.Background()

	a := newRedisCacheStore(client, 100, time.Minute)
	b := newRedisCacheStore(client, 100, time.Minute)

	require.NoError(t, a.Set(ctx, "prefix", "100", "$"))
	v, err := b.Get(ctx, "prefix", "100")
	require.NoError(t, err)
	assert.Equal(t, "$", v)
}

func TestNew(t *testing.T) {
	s, err := New(model.CacheConfig{}, "")
	require.NoError(t, err)
	assert.IsType(t, MemCacheStore{}, s)

	_, err = New(model.CacheConfig{Backend: "memcached"}, "")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	s, err = New(model.CacheConfig{Backend: BackendRedis, TTL: time.Minute}, "redis://"+mr.Addr())
	require.NoError(t, err)
	rs, ok := s.(*RedisCacheStore)
	require.True(t, ok)
	defer rs.Close()
	exerciseStore(t, rs)
}
