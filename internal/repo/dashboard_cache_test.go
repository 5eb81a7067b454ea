package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/redissvc"
	"github.com/rogerio-castellano/storefront-analytics/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDashboardCache(t *testing.T) {
	ctx := context.Background()
	c := repo.NewInMemoryDashboardCache(0)

	_, err := c.Latest(ctx)
	assert.ErrorIs(t, err, repo.ErrDashboardNotCached)

	d := analytics.EmptyDashboard(day)
	require.NoError(t, c.Store(ctx, d))

	got, err := c.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, day, got.GeneratedAt)

	c.Clear()
	_, err = c.Latest(ctx)
	assert.ErrorIs(t, err, repo.ErrDashboardNotCached)
}

func TestInMemoryDashboardCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := repo.NewInMemoryDashboardCache(time.Nanosecond)

	require.NoError(t, c.Store(ctx, analytics.EmptyDashboard(day)))
	time.Sleep(time.Millisecond)

	_, err := c.Latest(ctx)
	assert.ErrorIs(t, err, repo.ErrDashboardNotCached)
}

func TestRedisDashboardCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rs := redissvc.NewRedisService(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = rs.Close() })

	ctx := context.Background()
	c := repo.NewRedisDashboardCache(rs, 10*time.Minute)

	_, err := c.Latest(ctx)
	assert.ErrorIs(t, err, repo.ErrDashboardNotCached)

	d := analytics.EmptyDashboard(day)
	d.DataAvailable = true
	require.NoError(t, c.Store(ctx, d))
	assert.Equal(t, 10*time.Minute, mr.TTL(repo.DashboardCacheKey))

	got, err := c.Latest(ctx)
	require.NoError(t, err)
	assert.True(t, got.DataAvailable)
	assert.True(t, got.GeneratedAt.Equal(day))
	assert.Len(t, got.MonthlyRevenue, 12)

	mr.FastForward(11 * time.Minute)
	_, err = c.Latest(ctx)
	assert.ErrorIs(t, err, repo.ErrDashboardNotCached)
}
