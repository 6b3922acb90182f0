package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisKV(client), mr
}

func TestRedisKV(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		kv, _ := newTestRedisKV(t)

		require.NoError(t, kv.Set(ctx, "contacts", []byte(`[{"id":1}]`)))

		got, err := kv.Get(ctx, "contacts")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":1}]`), got)
	})

	t.Run("missing key", func(t *testing.T) {
		kv, _ := newTestRedisKV(t)

		_, err := kv.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("keys are namespaced", func(t *testing.T) {
		kv, mr := newTestRedisKV(t)

		require.NoError(t, kv.Set(ctx, "preferences", []byte(`{}`)))
		assert.True(t, mr.Exists("planner:preferences"))
	})

	t.Run("overwrite replaces the value", func(t *testing.T) {
		kv, _ := newTestRedisKV(t)

		require.NoError(t, kv.Set(ctx, "location", []byte(`{"latitude":1}`)))
		require.NoError(t, kv.Set(ctx, "location", []byte(`{"latitude":2}`)))

		got, err := kv.Get(ctx, "location")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"latitude":2}`), got)
	})

	t.Run("ping fails once the server is gone", func(t *testing.T) {
		kv, mr := newTestRedisKV(t)

		require.NoError(t, kv.Ping(ctx))
		mr.Close()
		assert.Error(t, kv.Ping(ctx))
	})
}
