package handlers

import (
	"context"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	repo "github.com/rogerio-castellano/storefront-analytics/internal/repo"
)

// DashboardProvider computes a dashboard as of now.
type DashboardProvider interface {
	GetDashboard(ctx context.Context, now time.Time) (analytics.Dashboard, error)
}

var (
	productRepo    repo.ProductRepository
	orderRepo      repo.OrderRepository
	dashboards     DashboardProvider
	dashboardCache repo.DashboardCache

	clock = time.Now
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetDashboardProvider(p DashboardProvider) {
	dashboards = p
}

func SetDashboardCache(c repo.DashboardCache) {
	dashboardCache = c
}

// SetClock replaces the time source used when a request carries no "at".
// A nil clock restores time.Now.
func SetClock(c func() time.Time) {
	if c == nil {
		c = time.Now
	}
	clock = c
}
