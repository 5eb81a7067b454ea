package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

type RecommendationType string

const (
	RecommendRestock   RecommendationType = "RESTOCK"
	RecommendPromote   RecommendationType = "PROMOTE"
	RecommendDiscount  RecommendationType = "DISCOUNT"
	RecommendClearance RecommendationType = "CLEARANCE"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// LowStockLevel is the stock below which a product needs restocking.
const LowStockLevel = 10

const (
	highStockLevel      = 50
	discountSalesFactor = 0.5
)

type Recommendation struct {
	Type     RecommendationType `json:"type"`
	Priority Priority           `json:"priority"`
	Product  models.Product     `json:"product"`
	Message  string             `json:"message"`
}

// recommendationRule maps a product to one advisory category. Rules are
// evaluated in slice order and the first match wins.
type recommendationRule struct {
	kind     RecommendationType
	priority Priority
	matches  func(p models.Product, avgSales float64) bool
	message  func(p models.Product) string
}

var recommendationRules = []recommendationRule{
	{
		kind:     RecommendRestock,
		priority: PriorityHigh,
		matches: func(p models.Product, _ float64) bool {
			return p.StockLevel < LowStockLevel
		},
		message: func(p models.Product) string {
			return fmt.Sprintf("Restock %s - only %d units left", p.Name, p.StockLevel)
		},
	},
	{
		kind:     RecommendPromote,
		priority: PriorityMedium,
		matches: func(p models.Product, _ float64) bool {
			return p.SalesCount == 0
		},
		message: func(p models.Product) string {
			return fmt.Sprintf("Promote %s - no sales recorded yet", p.Name)
		},
	},
	{
		kind:     RecommendDiscount,
		priority: PriorityMedium,
		matches: func(p models.Product, avgSales float64) bool {
			return avgSales > 0 && float64(p.SalesCount) < avgSales*discountSalesFactor
		},
		message: func(p models.Product) string {
			return fmt.Sprintf("Consider discount for %s - sales below average", p.Name)
		},
	},
	{
		kind:     RecommendClearance,
		priority: PriorityLow,
		matches: func(p models.Product, avgSales float64) bool {
			return p.StockLevel > highStockLevel && float64(p.SalesCount) < avgSales
		},
		message: func(p models.Product) string {
			return fmt.Sprintf("High inventory on %s - consider promotion", p.Name)
		},
	},
}

// Recommendations classifies every product into at most one category and
// returns the result ordered HIGH, MEDIUM, LOW. Within a tier the input order
// of products is kept.
func Recommendations(products []models.Product) []Recommendation {
	avgSales := averageSales(products)

	recs := make([]Recommendation, 0)
	for _, p := range products {
		for _, rule := range recommendationRules {
			if !rule.matches(p, avgSales) {
				continue
			}
			recs = append(recs, Recommendation{
				Type:     rule.kind,
				Priority: rule.priority,
				Product:  p,
				Message:  rule.message(p),
			})
			break
		}
	}

	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(a.Priority.rank(), b.Priority.rank())
	})
	return recs
}

func averageSales(products []models.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	total := 0
	for _, p := range products {
		total += p.SalesCount
	}
	return float64(total) / float64(len(products))
}
