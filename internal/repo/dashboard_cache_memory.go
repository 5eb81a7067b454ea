package repo

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
)

type InMemoryDashboardCache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	latest   *analytics.Dashboard
	storedAt time.Time
}

// NewInMemoryDashboardCache keeps entries for ttl. A non-positive ttl never
// expires them.
func NewInMemoryDashboardCache(ttl time.Duration) *InMemoryDashboardCache {
	return &InMemoryDashboardCache{ttl: ttl, now: time.Now}
}

func (c *InMemoryDashboardCache) Store(_ context.Context, d analytics.Dashboard) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = &d
	c.storedAt = c.now()
	return nil
}

func (c *InMemoryDashboardCache) Latest(_ context.Context) (analytics.Dashboard, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.latest == nil {
		return analytics.Dashboard{}, ErrDashboardNotCached
	}
	if c.ttl > 0 && c.now().Sub(c.storedAt) > c.ttl {
		return analytics.Dashboard{}, ErrDashboardNotCached
	}
	return *c.latest, nil
}

func (c *InMemoryDashboardCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = nil
}
