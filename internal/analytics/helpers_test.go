package analytics_test

import (
	"context"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

var refNow = time.Date(2026, time.October, 17, 15, 0, 0, 0, time.UTC)

type stubSource struct {
	products    []models.Product
	orders      []models.Order
	productsErr error
	ordersErr   error
}

func (s *stubSource) FetchAllProducts(context.Context) ([]models.Product, error) {
	return s.products, s.productsErr
}

func (s *stubSource) FetchAllOrders(context.Context) ([]models.Order, error) {
	return s.orders, s.ordersErr
}

// constJitter always returns the same draw.
type constJitter float64

func (c constJitter) Float64() float64 { return float64(c) }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(id, user, amount string, createdAt time.Time, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:          id,
		UserID:      user,
		TotalAmount: dec(amount),
		Status:      models.OrderStatusPending,
		CreatedAt:   createdAt,
		Items:       items,
	}
}

func product(id string, stock, sales int) models.Product {
	return models.Product{ID: id, Name: "Product " + id, StockLevel: stock, SalesCount: sales}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
