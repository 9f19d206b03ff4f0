package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roombooking/infras/otel/mocks"
	"roombooking/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomEntry struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return cache.NewRedisCache(client, mocks.NewOtel()), mr
}

func TestRedisCache_SaveGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "room:get:r-1", roomEntry{ID: "r-1", Capacity: 12}, 60))

	var got roomEntry
	require.NoError(t, c.Get(ctx, "room:get:r-1", &got))
	assert.Equal(t, roomEntry{ID: "r-1", Capacity: 12}, got)

	require.NoError(t, c.Save(ctx, "raw", "plain", 60))

	var raw string
	require.NoError(t, c.Get(ctx, "raw", &raw))
	assert.Equal(t, "plain", raw)

	mr.FastForward(61 * time.Second)

	err := c.Get(ctx, "room:get:r-1", &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrMiss)
	assert.True(t, cache.IsMiss(err))
}

func TestRedisCache_DeleteClear(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "calendar:r-1:a", "1", 60))
	require.NoError(t, c.Save(ctx, "calendar:r-1:b", "2", 60))
	require.NoError(t, c.Save(ctx, "calendar:r-2:a", "3", 60))

	require.NoError(t, c.Delete(ctx, "calendar:r-1:a", "calendar:missing"))
	assert.False(t, mr.Exists("calendar:r-1:a"))
	require.NoError(t, c.Delete(ctx))

	require.NoError(t, c.Clear(ctx, "calendar:r-1*"))
	assert.False(t, mr.Exists("calendar:r-1:b"))
	assert.True(t, mr.Exists("calendar:r-2:a"))
}

func TestRedisCache_GetUnmarshalError(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "room:get:r-1", "not-json", 60))

	var got roomEntry
	assert.Error(t, c.Get(ctx, "room:get:r-1", &got))
}

func TestRedisCache_ClearManyKeys(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	for i := range 450 {
		require.NoError(t, c.Save(ctx, fmt.Sprintf("reservation:calendar:r-1:%d", i), []byte("{}"), 60))
	}

	require.NoError(t, c.Save(ctx, "room:aggregate:r-1", "{}", 60))

	require.NoError(t, c.Clear(ctx, "reservation:calendar:r-1*"))
	assert.Equal(t, []string{"room:aggregate:r-1"}, mr.Keys())

	var raw []byte
	require.NoError(t, c.Get(ctx, "room:aggregate:r-1", &raw))
	assert.Equal(t, "{}", string(raw))
}
