package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Dashboard metrics
	DashboardComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_dashboard_computations_total",
			Help: "Dashboard computations by outcome",
		},
		[]string{"outcome"}, // ok, degraded
	)

	DashboardDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_dashboard_duration_seconds",
			Help:    "Time to fetch a snapshot and assemble the dashboard",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	DepletionWarnings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_stock_depletion_warnings",
			Help: "Products expected to run out within two weeks, as of the last dashboard",
		},
	)

	RecommendationsByPriority = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_recommendations",
			Help: "Recommendations in the last dashboard by priority",
		},
		[]string{"priority"},
	)

	CacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_dashboard_cache_writes_total",
			Help: "Dashboard cache writes by outcome",
		},
		[]string{"outcome"}, // ok, failed
	)
)

// PrometheusObserver records every dashboard computation.
type PrometheusObserver struct{}

var _ analytics.Observer = PrometheusObserver{}

func (PrometheusObserver) ObserveDashboard(d analytics.Dashboard, err error, elapsed time.Duration) {
	DashboardDuration.Observe(elapsed.Seconds())
	if err != nil {
		DashboardComputationsTotal.WithLabelValues("degraded").Inc()
		return
	}
	DashboardComputationsTotal.WithLabelValues("ok").Inc()

	DepletionWarnings.Set(float64(len(d.Depletion)))

	counts := map[analytics.Priority]int{
		analytics.PriorityHigh:   0,
		analytics.PriorityMedium: 0,
		analytics.PriorityLow:    0,
	}
	for _, r := range d.Recommendations {
		counts[r.Priority]++
	}
	for p, n := range counts {
		RecommendationsByPriority.WithLabelValues(string(p)).Set(float64(n))
	}
}
