package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/lessons-api/internal/cache"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	return mr, c
}

func TestClient_SetGetDel(t *testing.T) {
	_, c := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, cache.Lessons.Key(1), "payload", time.Minute))

	v, err := c.Get(ctx, "lessons:1")
	require.NoError(t, err)
	assert.Equal(t, "payload", v)

	require.NoError(t, c.Del(ctx, "lessons:1"))

	_, err = c.Get(ctx, "lessons:1")
	assert.ErrorIs(t, err, cache.ErrMiss)

	// Deleting a missing key is not an error.
	assert.NoError(t, c.Del(ctx, "lessons:1"))
}

func TestClient_SetIfAbsent(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	ok, err := c.SetIfAbsent(ctx, "k", "first", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetIfAbsent(ctx, "k", "second", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	assert.Positive(t, mr.TTL("k"))
}

func TestClient_TTLExpires(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestClient_Unreachable(t *testing.T) {
	mr, c := setupMiniRedis(t)
	mr.Close()

	assert.Error(t, c.Ping(context.Background()))
}
