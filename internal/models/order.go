package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusApproved   OrderStatus = "APPROVED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var validStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusApproved,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus accepts any casing of the seven known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range validStatuses {
		if candidate == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", s)
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is immutable from the analytics point of view. A zero CreatedAt means
// the record arrived without a timestamp.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"order_status"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `json:"items"`
}

// HasTimestamp reports whether the order can be placed on a calendar.
func (o Order) HasTimestamp() bool {
	return !o.CreatedAt.IsZero()
}
