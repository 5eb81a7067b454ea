package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rogerio-castellano/storefront-analytics/docs"
	"github.com/rogerio-castellano/storefront-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront-analytics/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var limiter *rl.Limiter

// SetRateLimiter enables per-client rate limiting on every route. A nil
// limiter disables it.
func SetRateLimiter(l *rl.Limiter) {
	limiter = l
}

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(otelhttp.NewMiddleware("storefront-analytics"))
	r.Use(RequestLogger)
	r.Use(Metrics)
	if limiter != nil {
		r.Use(RateLimit(limiter))
	}

	r.Get("/health", handlers.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/dashboard", handlers.GetDashboardHandler)
		r.Get("/dashboard/cached", handlers.GetCachedDashboardHandler)
		r.Get("/stats", handlers.GetStatsHandler)
		r.Get("/sales/monthly", handlers.GetMonthlySalesHandler)
		r.Get("/products/trending", handlers.GetTrendingProductsHandler)
		r.Get("/recommendations", handlers.GetRecommendationsHandler)
		r.Get("/stock/depletion", handlers.GetStockDepletionHandler)
		r.Get("/revenue/forecast", handlers.GetRevenueForecastHandler)
		r.Get("/orders/pending", handlers.GetPendingOrdersHandler)
		r.Get("/categories", handlers.GetCategoriesHandler)
	})

	r.Post("/products", handlers.CreateProductHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Post("/products/import", handlers.ImportProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)

	r.Post("/orders", handlers.CreateOrderHandler)
	r.Get("/orders", handlers.GetOrdersHandler)
	r.Post("/orders/import", handlers.ImportOrdersHandler)
	r.Get("/orders/{id}", handlers.GetOrderByIDHandler)

	return r
}
