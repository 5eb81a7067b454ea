package analytics

import (
	"slices"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// PendingOrder is an order still waiting on the admin: placed or paid, but
// not yet approved.
type PendingOrder struct {
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	Amount    decimal.Decimal    `json:"amount"`
	Status    models.OrderStatus `json:"status"`
	CreatedAt *time.Time         `json:"created_at,omitempty"`
}

// PendingOrders lists PENDING and PAID orders, newest first. Orders without a
// timestamp go last, in input order.
func PendingOrders(orders []models.Order) []PendingOrder {
	pending := make([]models.Order, 0)
	for _, o := range orders {
		if o.Status == models.OrderStatusPending || o.Status == models.OrderStatusPaid {
			pending = append(pending, o)
		}
	}

	slices.SortStableFunc(pending, func(a, b models.Order) int {
		switch {
		case a.HasTimestamp() && !b.HasTimestamp():
			return -1
		case !a.HasTimestamp() && b.HasTimestamp():
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	out := make([]PendingOrder, 0, len(pending))
	for _, o := range pending {
		po := PendingOrder{
			OrderID: o.ID,
			UserID:  o.UserID,
			Amount:  o.TotalAmount,
			Status:  o.Status,
		}
		if o.HasTimestamp() {
			created := o.CreatedAt
			po.CreatedAt = &created
		}
		out = append(out, po)
	}
	return out
}

type CategoryCount struct {
	Category     string `json:"category"`
	ProductCount int    `json:"product_count"`
}

// CategoryBreakdown counts products per catalogue category, in catalogue
// order and including empty categories.
func CategoryBreakdown(products []models.Product) []CategoryCount {
	counts := make(map[string]int, len(models.Categories))
	for _, p := range products {
		counts[p.CategoryOrDefault()]++
	}

	out := make([]CategoryCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, CategoryCount{Category: c, ProductCount: counts[c]})
	}
	return out
}
