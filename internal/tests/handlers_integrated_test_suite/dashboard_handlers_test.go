//go:build integration

package handlers_integrated_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	api "github.com/rogerio-castellano/storefront-analytics/internal/http"
	handler "github.com/rogerio-castellano/storefront-analytics/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

func TestDashboardFromPostgres(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	products := []handler.ProductRequest{
		{ID: "p1", Name: "Dark Truffle", Category: "DARK", Price: decimal.RequireFromString("4.50"), StockLevel: 70, SalesCount: 120},
		{ID: "p2", Name: "Milk Hazelnut", Category: "MILK", Price: decimal.RequireFromString("3.20"), StockLevel: 4, SalesCount: 30},
	}
	for _, p := range products {
		if w := postJSON(r, "/products", p); w.Code != http.StatusCreated {
			t.Fatalf("product creation failed: %d %s", w.Code, w.Body.String())
		}
	}
	orders := []handler.OrderRequest{
		{ID: "o1", UserID: "u1", TotalAmount: decimal.NewFromInt(100), Status: "PAID", CreatedAt: at(fixedNow.Add(-time.Hour)),
			Items: []models.OrderItem{{ProductID: "p1", Quantity: 150}}},
		{ID: "o2", UserID: "u2", TotalAmount: decimal.NewFromInt(80), Status: "DELIVERED", CreatedAt: at(fixedNow.AddDate(0, 0, -1)),
			Items: []models.OrderItem{{ProductID: "p1", Quantity: 60}}},
	}
	for _, o := range orders {
		if w := postJSON(r, "/orders", o); w.Code != http.StatusCreated {
			t.Fatalf("order creation failed: %d %s", w.Code, w.Body.String())
		}
	}

	w := get(r, "/analytics/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var d analytics.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}

	if !d.DataAvailable {
		t.Fatal("expected data_available to be true")
	}
	if d.Stats.SalesChangePercent != 25 {
		t.Errorf("expected 25%% change, got %v", d.Stats.SalesChangePercent)
	}
	if len(d.Depletion) != 1 || d.Depletion[0].Product.ID != "p1" || d.Depletion[0].DaysLeft != 10 {
		t.Errorf("expected p1 to run out in 10 days, got %+v", d.Depletion)
	}
	if len(d.PendingOrders) != 1 || d.PendingOrders[0].OrderID != "o1" {
		t.Errorf("expected o1 pending, got %+v", d.PendingOrders)
	}
}
