package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisRowCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRowCache(client, ttl), mr
}

func TestRedisRowCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	rows, ok, err := c.Get(context.Background(), domain.QuantityInvestors, 2020)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rows)
}

func TestRedisRowCache_SetAndGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	rows := domain.MonthlyRows{0: "0", 1: "15", 12: "1999999999999999499999999999"}
	require.NoError(t, c.Set(ctx, domain.QuantityAUM, 2020, rows))

	assert.True(t, mr.Exists("kpi:rows:aum:2020"))
	assert.Equal(t, time.Minute, mr.TTL("kpi:rows:aum:2020"))

	got, ok, err := c.Get(ctx, domain.QuantityAUM, 2020)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rows, got)

	_, ok, err = c.Get(ctx, domain.QuantityAUM, 2021)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRowCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, domain.QuantityInvestments, 2019, domain.MonthlyRows{1: "3"}))
	mr.FastForward(11 * time.Second)

	_, ok, err := c.Get(ctx, domain.QuantityInvestments, 2019)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRowCache_CorruptedPayload(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("kpi:rows:investors:2020", "not-json"))

	_, ok, err := c.Get(context.Background(), domain.QuantityInvestors, 2020)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	assert.Nil(t, NewRedisClient(config.Redis{}))

	client := NewRedisClient(config.Redis{Addr: "localhost:6379", DB: 2})
	require.NotNil(t, client)
	assert.Equal(t, 2, client.Options().DB)
	_ = client.Close()
}
