package telemetry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/rogerio-castellano/storefront-analytics/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestTracingHandler_AddsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := telemetry.NewLogger(&buf, "svc", "info")

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	logger.InfoContext(ctx, "inside span")
	span.End()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "svc", entry["service"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestTracingHandler_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := telemetry.NewLogger(&buf, "svc", "debug")

	logger.Debug("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, telemetry.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, telemetry.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, telemetry.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, telemetry.ParseLevel("verbose"))
}

func TestPrometheusObserver(t *testing.T) {
	obs := telemetry.PrometheusObserver{}
	okBefore := testutil.ToFloat64(telemetry.DashboardComputationsTotal.WithLabelValues("ok"))
	degradedBefore := testutil.ToFloat64(telemetry.DashboardComputationsTotal.WithLabelValues("degraded"))

	d := analytics.EmptyDashboard(time.Now())
	d.Recommendations = []analytics.Recommendation{
		{Type: analytics.RecommendRestock, Priority: analytics.PriorityHigh, Product: models.Product{ID: "1"}},
		{Type: analytics.RecommendRestock, Priority: analytics.PriorityHigh, Product: models.Product{ID: "2"}},
	}
	d.Depletion = []analytics.DepletionWarning{{Product: models.Product{ID: "x"}, Stock: 1, DaysLeft: 1, DailyRate: 1}}

	obs.ObserveDashboard(d, nil, 10*time.Millisecond)
	obs.ObserveDashboard(analytics.EmptyDashboard(time.Now()), errors.New("down"), time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(telemetry.DashboardComputationsTotal.WithLabelValues("ok")))
	assert.Equal(t, degradedBefore+1, testutil.ToFloat64(telemetry.DashboardComputationsTotal.WithLabelValues("degraded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(telemetry.DepletionWarnings))
	assert.Equal(t, 2.0, testutil.ToFloat64(telemetry.RecommendationsByPriority.WithLabelValues("HIGH")))
	assert.Equal(t, 0.0, testutil.ToFloat64(telemetry.RecommendationsByPriority.WithLabelValues("LOW")))
}

func TestInitTracer_WithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.InitTracer(context.Background(), "svc", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
