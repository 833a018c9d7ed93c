package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"trip-route-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisOfferCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisOfferCache(rdb, time.Minute), mr
}

func TestRedisOfferCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	options := []domain.FlightOption{
		{ID: "a", Airline: "EK", Price: 512.4, Currency: "USD", DurationMinutes: 510, Stops: 1},
		{ID: "b", Airline: "AT", Price: 380, Currency: "USD", DurationMinutes: 420},
	}

	require.NoError(t, c.Put(ctx, "offers:BLR:RAK:2026-03-01:2:0:", options))

	got, ok, err := c.Get(ctx, "offers:BLR:RAK:2026-03-01:2:0:")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, options, got)
}

func TestRedisOfferCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok, err := c.Get(context.Background(), "offers:nothing")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestRedisOfferCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", []domain.FlightOption{{ID: "a"}}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisOfferCacheNilClient(t *testing.T) {
	c := NewRedisOfferCache(nil, 0)

	_, _, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "k", nil))
}
