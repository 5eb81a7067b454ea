package handlers

import (
	"slices"
	"strings"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

type ValidationError struct {
	Field       string `json:"field,omitempty"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Category != "" && !slices.Contains(models.Categories, strings.ToUpper(p.Category)) {
		errs = append(errs, ValidationError{Field: "Category", Description: "Category must be one of " + strings.Join(models.Categories, ", ")})
	}
	if p.Price.IsNegative() {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if p.StockLevel < 0 {
		errs = append(errs, ValidationError{Field: "StockLevel", Description: "Stock level cannot be negative"})
	}
	if p.SalesCount < 0 {
		errs = append(errs, ValidationError{Field: "SalesCount", Description: "Sales count cannot be negative"})
	}
	return errs
}

func validateOrder(o OrderRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(o.UserID) == "" {
		errs = append(errs, ValidationError{Field: "UserID", Description: "User id is required"})
	}
	if o.TotalAmount.IsNegative() {
		errs = append(errs, ValidationError{Field: "TotalAmount", Description: "Total amount cannot be negative"})
	}
	if _, err := models.ParseOrderStatus(o.Status); err != nil {
		errs = append(errs, ValidationError{Field: "Status", Description: err.Error()})
	}
	for _, item := range o.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			errs = append(errs, ValidationError{Field: "Items", Description: "Every item needs a product id"})
			break
		}
		if item.Quantity <= 0 {
			errs = append(errs, ValidationError{Field: "Items", Description: "Item quantity must be positive"})
			break
		}
	}
	return errs
}

// joinDescriptions flattens validation errors into one row message.
func joinDescriptions(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Description
	}
	return strings.Join(parts, "; ")
}
