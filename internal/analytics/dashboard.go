package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/rogerio-castellano/storefront-analytics/internal/analytics"

// Dashboard is everything the admin dashboard renders, computed from one
// snapshot. DataAvailable is false when the snapshot could not be fetched and
// every block holds its empty value.
type Dashboard struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	DataAvailable   bool               `json:"data_available"`
	Stats           Stats              `json:"stats"`
	MonthlyRevenue  []decimal.Decimal  `json:"monthly_revenue"`
	ChartYears      []int              `json:"chart_years"`
	Trending        Trending           `json:"trending"`
	Recommendations []Recommendation   `json:"recommendations"`
	Depletion       []DepletionWarning `json:"stock_depletion"`
	Forecast        []ForecastPoint    `json:"revenue_forecast"`
	PendingOrders   []PendingOrder     `json:"pending_orders"`
	Categories      []CategoryCount    `json:"categories"`
}

// Observer is notified after every dashboard computation.
type Observer interface {
	ObserveDashboard(d Dashboard, err error, elapsed time.Duration)
}

type Option func(*Engine)

// WithJitter replaces the forecast randomness source.
func WithJitter(j Jitter) Option {
	return func(e *Engine) { e.jitter = j }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine assembles the dashboard. It keeps no state between calls and is
// safe for concurrent use as long as its Jitter is.
type Engine struct {
	source   DataSource
	jitter   Jitter
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
}

func NewEngine(source DataSource, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		jitter: globalJitter{},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetDashboard fetches one snapshot and runs every calculator against it.
// On a fetch failure the returned dashboard is still valid, with every block
// empty, and the error wraps ErrSourceUnavailable.
func (e *Engine) GetDashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "analytics.GetDashboard")
	defer span.End()

	products, orders, err := e.snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot unavailable")
		e.logger.WarnContext(ctx, "dashboard degraded: snapshot unavailable", slog.Any("error", err))

		d := EmptyDashboard(now)
		e.observe(d, err, start)
		return d, err
	}

	span.SetAttributes(
		attribute.Int("analytics.products", len(products)),
		attribute.Int("analytics.orders", len(orders)),
	)

	d := e.Assemble(products, orders, now)
	e.observe(d, nil, start)
	return d, nil
}

// Assemble runs every calculator over an already fetched snapshot.
func (e *Engine) Assemble(products []models.Product, orders []models.Order, now time.Time) Dashboard {
	years := AdmissibleYears(now)
	return Dashboard{
		GeneratedAt:     now,
		DataAvailable:   true,
		Stats:           ComputeStats(orders, products, now),
		MonthlyRevenue:  MonthlyRevenue(orders, years, now.Location()),
		ChartYears:      years,
		Trending:        TrendingProducts(products),
		Recommendations: Recommendations(products),
		Depletion:       DepletionForecast(products, orders, now),
		Forecast:        RevenueForecast(orders, now, e.jitter),
		PendingOrders:   PendingOrders(orders),
		Categories:      CategoryBreakdown(products),
	}
}

// EmptyDashboard is the degraded result: zero totals, twelve zero months and
// empty lists.
func EmptyDashboard(now time.Time) Dashboard {
	return Dashboard{
		GeneratedAt:     now,
		DataAvailable:   false,
		Stats:           ComputeStats(nil, nil, now),
		MonthlyRevenue:  MonthlyRevenue(nil, nil, now.Location()),
		ChartYears:      AdmissibleYears(now),
		Trending:        TrendingProducts(nil),
		Recommendations: []Recommendation{},
		Depletion:       []DepletionWarning{},
		Forecast:        []ForecastPoint{},
		PendingOrders:   []PendingOrder{},
		Categories:      CategoryBreakdown(nil),
	}
}

// snapshot fetches both collections. Any failure discards both so that every
// block degrades the same way.
func (e *Engine) snapshot(ctx context.Context) ([]models.Product, []models.Order, error) {
	ctx, span := e.tracer.Start(ctx, "analytics.snapshot")
	defer span.End()

	products, err := e.source.FetchAllProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fetch products: %w", ErrSourceUnavailable, err)
	}
	orders, err := e.source.FetchAllOrders(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fetch orders: %w", ErrSourceUnavailable, err)
	}
	return products, orders, nil
}

func (e *Engine) observe(d Dashboard, err error, start time.Time) {
	if e.observer != nil {
		e.observer.ObserveDashboard(d, err, time.Since(start))
	}
}
