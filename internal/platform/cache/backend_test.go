package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBackend(client), mr
}

func exerciseBackend(t *testing.T, b Backend) {
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "list", []byte("A"), time.Hour, []string{"node_list", "node:1"}))
	require.NoError(t, b.Set(ctx, "one", []byte("B"), time.Hour, []string{"node:1"}))
	require.NoError(t, b.Set(ctx, "other", []byte("C"), time.Hour, []string{"node:2"}))

	v, ok, err := b.Get(ctx, "list")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("A"), v)

	require.NoError(t, b.Invalidate(ctx, "node:1"))

	_, ok, _ = b.Get(ctx, "list")
	assert.False(t, ok)
	_, ok, _ = b.Get(ctx, "one")
	assert.False(t, ok)
	_, ok, _ = b.Get(ctx, "other")
	assert.True(t, ok)

	// tag sin entradas: no falla
	require.NoError(t, b.Invalidate(ctx, "taxonomy_term:99"))
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestMemoryBackend_Expiry(t *testing.T) {
	b := NewMemoryBackend()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Set(context.Background(), "k", []byte("v"), time.Minute, nil))

	now = now.Add(59 * time.Second)
	_, ok, _ := b.Get(context.Background(), "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = b.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestRedisBackend(t *testing.T) {
	b, _ := setupRedisBackend(t)
	exerciseBackend(t, b)
}

func TestRedisBackend_KeysAndTTL(t *testing.T) {
	b, mr := setupRedisBackend(t)

	require.NoError(t, b.Set(context.Background(), "variant:x", []byte("v"), 10*time.Minute, []string{"node:5"}))

	assert.True(t, mr.Exists(pageKeyPrefix+"variant:x"))
	assert.Equal(t, 10*time.Minute, mr.TTL(pageKeyPrefix+"variant:x"))

	members, err := mr.SMembers(tagSetPrefix + "node:5")
	require.NoError(t, err)
	assert.Equal(t, []string{"variant:x"}, members)

	mr.FastForward(11 * time.Minute)
	_, ok, err := b.Get(context.Background(), "variant:x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBackend_ConnectionError(t *testing.T) {
	b, mr := setupRedisBackend(t)
	mr.Close()

	_, _, err := b.Get(context.Background(), "k")
	assert.Error(t, err)
}
