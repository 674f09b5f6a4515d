package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/application/ticket/dto"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisTicketStatsCache_RoundTripAndInvalidate(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisTicketStatsCache(client, time.Minute)
	ctx := context.Background()

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	want := dto.StatsDTO{Total: 5, Open: 2, InProgress: 1, Resolved: 1, Closed: 1}
	require.NoError(t, c.Set(ctx, want))

	got, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, *got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTicketStatsCache_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisTicketStatsCache(client, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, dto.StatsDTO{Total: 1, Open: 1}))
	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTicketStatsCache_CorruptValueIsMiss(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(ticketStatsKey, "{not json"))

	_, ok, err := NewRedisTicketStatsCache(client, 0).Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisTicketStatsCache_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, ok, err := NewRedisTicketStatsCache(client, 0).Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
