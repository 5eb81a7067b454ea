package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
)

var ErrDashboardNotCached = errors.New("dashboard not cached")

// DashboardCache keeps the most recently computed dashboard.
type DashboardCache interface {
	Store(ctx context.Context, d analytics.Dashboard) error
	Latest(ctx context.Context) (analytics.Dashboard, error)
}
