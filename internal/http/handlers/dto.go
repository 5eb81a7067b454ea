package handlers

import (
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Price      decimal.Decimal `json:"price"`
	StockLevel int             `json:"stock_level"`
	SalesCount int             `json:"sales_count"`
}

type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	StockLevel int             `json:"stock_level"`
	SalesCount int             `json:"sales_count"`
	LowStock   bool            `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type OrderRequest struct {
	ID          string             `json:"id,omitempty"`
	UserID      string             `json:"user_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"order_status"`
	CreatedAt   *time.Time         `json:"created_at,omitempty"`
	Items       []models.OrderItem `json:"items"`
}

type OrdersSearchResult struct {
	Data []models.Order `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type ImportResult struct {
	Imported int               `json:"imported"`
	Errors   []ValidationError `json:"errors"`
}

type MonthlySalesResponse struct {
	Years   []int             `json:"years"`
	Revenue []decimal.Decimal `json:"revenue"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
