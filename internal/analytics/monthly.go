package analytics

import (
	"slices"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// chartYears is the number of calendar years the revenue chart spans.
const chartYears = 2

// AdmissibleYears returns the calendar years the monthly chart covers, oldest first.
func AdmissibleYears(now time.Time) []int {
	years := make([]int, 0, chartYears)
	for i := chartYears - 1; i >= 0; i-- {
		years = append(years, now.Year()-i)
	}
	return years
}

// MonthlyRevenue sums order totals per calendar month (January first) across
// the admissible years. Orders from other years, or without a timestamp, are
// left out.
func MonthlyRevenue(orders []models.Order, years []int, loc *time.Location) []decimal.Decimal {
	months := make([]decimal.Decimal, 12)
	for i := range months {
		months[i] = decimal.Zero
	}

	for _, o := range orders {
		if !o.HasTimestamp() {
			continue
		}
		t := o.CreatedAt.In(loc)
		if !slices.Contains(years, t.Year()) {
			continue
		}
		idx := int(t.Month()) - 1
		months[idx] = months[idx].Add(o.TotalAmount)
	}
	return months
}
