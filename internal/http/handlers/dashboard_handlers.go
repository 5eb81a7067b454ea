package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	repo "github.com/rogerio-castellano/storefront-analytics/internal/repo"
	"github.com/rogerio-castellano/storefront-analytics/internal/telemetry"
)

// computeDashboard evaluates the dashboard as of the optional "at" query
// parameter. It writes the error response itself and reports ok=false when the
// request cannot be served. current is true when the dashboard was evaluated at
// the clock's now rather than a caller-supplied instant. A degraded dashboard
// is still served.
func computeDashboard(w http.ResponseWriter, r *http.Request) (d analytics.Dashboard, current bool, ok bool) {
	if dashboards == nil {
		http.Error(w, "analytics engine not configured", http.StatusServiceUnavailable)
		return analytics.Dashboard{}, false, false
	}

	at, err := queryTime(r, "at")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return analytics.Dashboard{}, false, false
	}
	now := clock()
	if at != nil {
		now = *at
	}

	d, err = dashboards.GetDashboard(r.Context(), now)
	if err != nil {
		slog.WarnContext(r.Context(), "serving degraded dashboard", slog.Any("error", err))
	}
	return d, at == nil, true
}

// GetDashboardHandler godoc
// @Summary Full operational dashboard
// @Description Computes every analytics block from one snapshot of products and orders. When the data source is unavailable the response is still 200 with data_available=false and empty blocks. Only dashboards evaluated at the current time are cached.
// @Tags analytics
// @Produce json
// @Param at query string false "Evaluation instant (RFC3339), defaults to now"
// @Success 200 {object} analytics.Dashboard
// @Failure 400 {string} string "Invalid at parameter"
// @Router /analytics/dashboard [get]
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, current, ok := computeDashboard(w, r)
	if !ok {
		return
	}

	// Only the live view is cached; an "at" request is a historical what-if.
	if current && d.DataAvailable && dashboardCache != nil {
		if err := dashboardCache.Store(r.Context(), d); err != nil {
			telemetry.CacheWritesTotal.WithLabelValues("failed").Inc()
			slog.WarnContext(r.Context(), "failed to cache dashboard", slog.Any("error", err))
		} else {
			telemetry.CacheWritesTotal.WithLabelValues("ok").Inc()
		}
	}

	respond(w, r, http.StatusOK, d)
}

// GetCachedDashboardHandler godoc
// @Summary Last computed dashboard
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.Dashboard
// @Failure 404 {string} string "No cached dashboard"
// @Failure 500 {string} string "Internal error"
// @Router /analytics/dashboard/cached [get]
func GetCachedDashboardHandler(w http.ResponseWriter, r *http.Request) {
	if dashboardCache == nil {
		http.Error(w, "no cached dashboard", http.StatusNotFound)
		return
	}

	d, err := dashboardCache.Latest(r.Context())
	if errors.Is(err, repo.ErrDashboardNotCached) {
		http.Error(w, "no cached dashboard", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read cached dashboard", slog.Any("error", err))
		http.Error(w, "failed to read cached dashboard", http.StatusInternalServerError)
		return
	}

	respond(w, r, http.StatusOK, d)
}

// GetStatsHandler godoc
// @Summary Headline sales statistics
// @Tags analytics
// @Produce json
// @Param at query string false "Evaluation instant (RFC3339)"
// @Success 200 {object} analytics.Stats
// @Failure 400 {string} string "Invalid at parameter"
// @Router /analytics/stats [get]
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.Stats)
	}
}

// GetMonthlySalesHandler godoc
// @Summary Revenue per calendar month
// @Description Twelve buckets, January first, summed over the current and previous year.
// @Tags analytics
// @Produce json
// @Param at query string false "Evaluation instant (RFC3339)"
// @Success 200 {object} MonthlySalesResponse
// @Failure 400 {string} string "Invalid at parameter"
// @Router /analytics/sales/monthly [get]
func GetMonthlySalesHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, MonthlySalesResponse{Years: d.ChartYears, Revenue: d.MonthlyRevenue})
	}
}

// GetTrendingProductsHandler godoc
// @Summary Rising and falling products
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.Trending
// @Router /analytics/products/trending [get]
func GetTrendingProductsHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.Trending)
	}
}

// GetRecommendationsHandler godoc
// @Summary Inventory recommendations
// @Tags analytics
// @Produce json
// @Success 200 {array} analytics.Recommendation
// @Router /analytics/recommendations [get]
func GetRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.Recommendations)
	}
}

// GetStockDepletionHandler godoc
// @Summary Products about to run out
// @Tags analytics
// @Produce json
// @Param at query string false "Evaluation instant (RFC3339)"
// @Success 200 {array} analytics.DepletionWarning
// @Failure 400 {string} string "Invalid at parameter"
// @Router /analytics/stock/depletion [get]
func GetStockDepletionHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.Depletion)
	}
}

// GetRevenueForecastHandler godoc
// @Summary Seven day revenue forecast
// @Tags analytics
// @Produce json
// @Param at query string false "Evaluation instant (RFC3339)"
// @Success 200 {array} analytics.ForecastPoint
// @Failure 400 {string} string "Invalid at parameter"
// @Router /analytics/revenue/forecast [get]
func GetRevenueForecastHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.Forecast)
	}
}

// GetPendingOrdersHandler godoc
// @Summary Orders waiting for approval
// @Tags analytics
// @Produce json
// @Success 200 {array} analytics.PendingOrder
// @Router /analytics/orders/pending [get]
func GetPendingOrdersHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.PendingOrders)
	}
}

// GetCategoriesHandler godoc
// @Summary Product count per category
// @Tags analytics
// @Produce json
// @Success 200 {array} analytics.CategoryCount
// @Router /analytics/categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if d, _, ok := computeDashboard(w, r); ok {
		respond(w, r, http.StatusOK, d.Categories)
	}
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
