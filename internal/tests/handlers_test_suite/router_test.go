package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/storefront-analytics/internal/http"
	handler "github.com/rogerio-castellano/storefront-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront-analytics/internal/http/rate_limiter"
)

func TestHealthHandler(t *testing.T) {
	r := api.NewRouter()

	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}

func TestMetricsEndpointExposesRequestCounters(t *testing.T) {
	r := api.NewRouter()

	get(r, "/health")
	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "storefront_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
	if !strings.Contains(body, `route="/health"`) {
		t.Error("expected the /health route label in metrics output")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	api.SetRateLimiter(rl.New(0.001, 2))
	t.Cleanup(func() { api.SetRateLimiter(nil) })
	r := api.NewRouter()

	for i := 0; i < 2; i++ {
		if w := get(r, "/health"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 OK, got %d", i+1, w.Code)
		}
	}

	w := get(r, "/health")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rate limit exceeded") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}
