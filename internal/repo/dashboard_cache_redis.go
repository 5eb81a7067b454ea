package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/redissvc"
)

const DashboardCacheKey = "analytics:dashboard:latest"

type RedisDashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDashboardCache(rs *redissvc.RedisService, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{rdb: rs.Rdb(), ttl: ttl}
}

func (c *RedisDashboardCache) Store(ctx context.Context, d analytics.Dashboard) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	if err := c.rdb.Set(ctx, DashboardCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dashboard: %w", err)
	}
	return nil
}

func (c *RedisDashboardCache) Latest(ctx context.Context) (analytics.Dashboard, error) {
	data, err := c.rdb.Get(ctx, DashboardCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return analytics.Dashboard{}, ErrDashboardNotCached
	}
	if err != nil {
		return analytics.Dashboard{}, fmt.Errorf("failed to read cached dashboard: %w", err)
	}

	var d analytics.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return analytics.Dashboard{}, fmt.Errorf("failed to decode cached dashboard: %w", err)
	}
	return d, nil
}
