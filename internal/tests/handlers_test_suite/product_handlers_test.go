package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/storefront-analytics/internal/http"
	handler "github.com/rogerio-castellano/storefront-analytics/internal/http/handlers"
	"github.com/shopspring/decimal"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Ruby Bar", Category: "specialty", Price: decimal.RequireFromString("6.40"), StockLevel: 3})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.ID == "" {
		t.Error("expected a generated id")
	}
	if resp.Category != "SPECIALTY" {
		t.Errorf("expected category SPECIALTY, got %v", resp.Category)
	}
	if !resp.Price.Equal(decimal.RequireFromString("6.4")) {
		t.Errorf("expected price 6.40, got %v", resp.Price)
	}
	if !resp.LowStock {
		t.Error("expected low_stock for 3 units")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name and negative price",
			payload:        handler.ProductRequest{Name: "", Price: decimal.NewFromInt(-1)},
			expectedErrors: []string{"Name", "Price"},
		},
		{
			name:           "Unknown category",
			payload:        handler.ProductRequest{Name: "Bar", Category: "CARAMEL"},
			expectedErrors: []string{"Category"},
		},
		{
			name:           "Negative counters",
			payload:        handler.ProductRequest{Name: "Bar", StockLevel: -1, SalesCount: -2},
			expectedErrors: []string{"StockLevel", "SalesCount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var errs []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
				t.Fatalf("failed to decode validation errors: %v", err)
			}
			if len(errs) != len(tt.expectedErrors) {
				t.Fatalf("expected %d errors, got %v", len(tt.expectedErrors), errs)
			}
			for i, field := range tt.expectedErrors {
				if errs[i].Field != field {
					t.Errorf("expected error on %s, got %s", field, errs[i].Field)
				}
			}
		})
	}
}

func TestCreateProductHandler_Duplicate(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{ID: "p1", Name: "Bar"})
	w := createProduct(r, handler.ProductRequest{ID: "p1", Name: "Other"})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestGetProductsHandler_Filters(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	for _, p := range []handler.ProductRequest{
		{ID: "1", Name: "Dark Sea Salt", Category: "DARK", StockLevel: 8},
		{ID: "2", Name: "Dark Mint", Category: "DARK", StockLevel: 60},
		{ID: "3", Name: "Milk Classic", Category: "MILK", StockLevel: 30},
	} {
		if w := createProduct(r, p); w.Code != http.StatusCreated {
			t.Fatalf("product creation failed: %d", w.Code)
		}
	}

	tests := []struct {
		query     string
		wantIDs   []string
		wantTotal int
	}{
		{"", []string{"1", "2", "3"}, 3},
		{"?category=dark", []string{"1", "2"}, 2},
		{"?name=mint", []string{"2"}, 1},
		{"?max_stock=10", []string{"1"}, 1},
		{"?limit=2&offset=1", []string{"2", "3"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(r, "/products"+tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}

			var res handler.ProductsSearchResult
			if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if res.Meta.TotalCount != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, res.Meta.TotalCount)
			}
			if len(res.Data) != len(tt.wantIDs) {
				t.Fatalf("expected %d products, got %d", len(tt.wantIDs), len(res.Data))
			}
			for i, id := range tt.wantIDs {
				if res.Data[i].ID != id {
					t.Errorf("expected product %s at %d, got %s", id, i, res.Data[i].ID)
				}
			}
		})
	}

	if w := get(r, "/products?limit=ten"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non numeric limit, got %d", w.Code)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	createProduct(r, handler.ProductRequest{ID: "abc", Name: "Mixed Box", Category: "MIXED"})

	if w := get(r, "/products/abc"); w.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", w.Code)
	}
	if w := get(r, "/products/missing"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
