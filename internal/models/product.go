package models

import "github.com/shopspring/decimal"

// Category values used by the storefront catalogue.
const (
	CategoryWhite     = "WHITE"
	CategoryDark      = "DARK"
	CategoryMilk      = "MILK"
	CategoryMixed     = "MIXED"
	CategorySpecialty = "SPECIALTY"
)

// Categories lists every catalogue category in display order.
var Categories = []string{CategoryWhite, CategoryDark, CategoryMilk, CategoryMixed, CategorySpecialty}

// Product represents a product entity as seen by the analytics engine.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Price      decimal.Decimal `json:"price"`
	StockLevel int             `json:"stock_level"`
	SalesCount int             `json:"sales_count"`
}

// CategoryOrDefault returns the product category, falling back to SPECIALTY
// when the record does not carry a known one.
func (p Product) CategoryOrDefault() string {
	for _, c := range Categories {
		if p.Category == c {
			return c
		}
	}
	return CategorySpecialty
}
