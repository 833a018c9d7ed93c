package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-route-service/internal/domain"
)

const defaultOfferTTL = 15 * time.Minute

// RedisOfferCache stores normalized flight options per search tuple so
// repeated gateway evaluations do not re-hit the external API. Entries
// expire; flight offers go stale quickly.
type RedisOfferCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisOfferCache(rdb *redis.Client, ttl time.Duration) *RedisOfferCache {
	if ttl <= 0 {
		ttl = defaultOfferTTL
	}
	return &RedisOfferCache{rdb: rdb, ttl: ttl}
}

func (c *RedisOfferCache) Get(ctx context.Context, key string) ([]domain.FlightOption, bool, error) {
	if c.rdb == nil {
		return nil, false, errors.New("offer cache: redis client is nil")
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get offer cache %q: %w", key, err)
	}

	var options []domain.FlightOption
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, false, fmt.Errorf("get offer cache %q: decode: %w", key, err)
	}
	return options, true, nil
}

func (c *RedisOfferCache) Put(ctx context.Context, key string, options []domain.FlightOption) error {
	if c.rdb == nil {
		return errors.New("offer cache: redis client is nil")
	}

	raw, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("put offer cache %q: encode: %w", key, err)
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put offer cache %q: %w", key, err)
	}
	return nil
}
