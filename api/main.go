package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/config"
	"github.com/rogerio-castellano/storefront-analytics/internal/db"
	api "github.com/rogerio-castellano/storefront-analytics/internal/http"
	"github.com/rogerio-castellano/storefront-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront-analytics/internal/redissvc"
	"github.com/rogerio-castellano/storefront-analytics/internal/repo"
	"github.com/rogerio-castellano/storefront-analytics/internal/telemetry"
)

// @title Storefront Analytics API
// @version 1.0
// @description Operational analytics for the storefront admin dashboard.
// @host localhost:8080
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := telemetry.InitLogger(cfg.Telemetry.ServiceName, cfg.Telemetry.LogLevel)

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	productRepo, orderRepo, closeStore, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	cache, closeCache := openDashboardCache(ctx, cfg, logger)
	defer closeCache()

	source := repo.NewSnapshotSource()
	source.SetRepositories(productRepo, orderRepo)

	engineOpts := []analytics.Option{
		analytics.WithLogger(logger),
		analytics.WithObserver(telemetry.PrometheusObserver{}),
	}
	if cfg.Analytics.ForecastSeed != 0 {
		engineOpts = append(engineOpts, analytics.WithJitter(analytics.SeededJitter(cfg.Analytics.ForecastSeed)))
	}

	handlers.SetProductRepo(productRepo)
	handlers.SetOrderRepo(orderRepo)
	handlers.SetDashboardProvider(analytics.NewEngine(source, engineOpts...))
	handlers.SetDashboardCache(cache)

	limiter := rl.New(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)
	go limiter.StartVisitorCleanupLoop(ctx)
	api.SetRateLimiter(limiter)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ server running", slog.String("addr", cfg.HTTP.Addr), slog.String("datasource", cfg.DataSource.Kind))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg config.Config) (repo.ProductRepository, repo.OrderRepository, func(), error) {
	if cfg.DataSource.Kind != config.DataSourcePostgres {
		return repo.NewInMemoryProductRepository(), repo.NewInMemoryOrderRepository(), func() {}, nil
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.EnsureSchema(ctx, database); err != nil {
		database.Close()
		return nil, nil, nil, err
	}

	products := repo.NewPostgresProductRepository(database)
	products.SetQueryTimeout(cfg.Database.QueryTimeout)
	orders := repo.NewPostgresOrderRepository(database)
	orders.SetQueryTimeout(cfg.Database.QueryTimeout)

	return products, orders, func() { database.Close() }, nil
}

// openDashboardCache prefers Redis and falls back to process memory when
// Redis is not configured or unreachable.
func openDashboardCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.DashboardCache, func()) {
	if cfg.Redis.Addr == "" {
		return repo.NewInMemoryDashboardCache(cfg.Redis.CacheTTL), func() {}
	}

	rs, err := redissvc.Connect(ctx, redissvc.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, caching dashboards in memory", slog.Any("error", err))
		return repo.NewInMemoryDashboardCache(cfg.Redis.CacheTTL), func() {}
	}
	return repo.NewRedisDashboardCache(rs, cfg.Redis.CacheTTL), func() { _ = rs.Close() }
}
