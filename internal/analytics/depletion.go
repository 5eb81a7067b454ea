package analytics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

const (
	salesWindowDays      = 30
	depletionWarningDays = 14
)

type DepletionWarning struct {
	Product   models.Product `json:"product"`
	Stock     int            `json:"stock"`
	DaysLeft  int            `json:"days_left"`
	DailyRate float64        `json:"daily_rate"`
}

// DepletionForecast flags products expected to run out within two weeks at
// their trailing 30-day sales rate, soonest first.
//
// Products with no sales in the window, or with no stock left, are never
// flagged: a rate cannot be derived for the former and the latter is already
// reported by the RESTOCK recommendation.
func DepletionForecast(products []models.Product, orders []models.Order, now time.Time) []DepletionWarning {
	sold := unitsSoldSince(orders, now, salesWindowDays)

	warnings := make([]DepletionWarning, 0)
	for _, p := range products {
		total := sold[p.ID]
		if total <= 0 || p.StockLevel <= 0 {
			continue
		}

		rate := float64(total) / salesWindowDays
		daysLeft := float64(p.StockLevel) / rate
		if daysLeft >= depletionWarningDays {
			continue
		}

		warnings = append(warnings, DepletionWarning{
			Product:   p,
			Stock:     p.StockLevel,
			DaysLeft:  int(math.Round(daysLeft)),
			DailyRate: math.Round(rate*10) / 10,
		})
	}

	slices.SortStableFunc(warnings, func(a, b DepletionWarning) int {
		return cmp.Compare(a.DaysLeft, b.DaysLeft)
	})
	return warnings
}

// unitsSoldSince totals item quantities per product for orders placed in the
// trailing window. Items with a non-positive quantity are ignored.
func unitsSoldSince(orders []models.Order, now time.Time, days int) map[string]int {
	sold := make(map[string]int)
	for _, o := range orders {
		if !withinTrailingDays(o.CreatedAt, now, days) {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == "" || item.Quantity <= 0 {
				continue
			}
			sold[item.ProductID] += item.Quantity
		}
	}
	return sold
}
