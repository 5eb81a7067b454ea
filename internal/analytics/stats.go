package analytics

import (
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Stats holds the headline KPIs shown at the top of the dashboard.
type Stats struct {
	TotalSales         decimal.Decimal `json:"total_sales"`
	DailySales         decimal.Decimal `json:"daily_sales"`
	YesterdaySales     decimal.Decimal `json:"yesterday_sales"`
	SalesChangePercent float64         `json:"sales_change_percent"`
	TotalProducts      int             `json:"total_products"`
	TotalCustomers     int             `json:"total_customers"`
	TotalOrders        int             `json:"total_orders"`
	TotalDeliveries    int             `json:"total_deliveries"`
}

// ComputeStats aggregates totals over every order regardless of status.
// Days are evaluated in now's location. Orders without a timestamp still count
// towards TotalSales but never towards the daily buckets.
func ComputeStats(orders []models.Order, products []models.Product, now time.Time) Stats {
	loc := now.Location()
	today := dayOf(now, loc)
	yesterday := dayOf(now.AddDate(0, 0, -1), loc)

	s := Stats{
		TotalSales:     decimal.Zero,
		DailySales:     decimal.Zero,
		YesterdaySales: decimal.Zero,
		TotalProducts:  len(products),
		TotalOrders:    len(orders),
	}

	customers := make(map[string]struct{})
	for _, o := range orders {
		s.TotalSales = s.TotalSales.Add(o.TotalAmount)

		if o.Status == models.OrderStatusDelivered {
			s.TotalDeliveries++
		}
		if o.UserID != "" {
			customers[o.UserID] = struct{}{}
		}

		if !o.HasTimestamp() {
			continue
		}
		switch dayOf(o.CreatedAt, loc) {
		case today:
			s.DailySales = s.DailySales.Add(o.TotalAmount)
		case yesterday:
			s.YesterdaySales = s.YesterdaySales.Add(o.TotalAmount)
		}
	}

	s.TotalCustomers = len(customers)
	s.SalesChangePercent = salesChangePercent(s.DailySales, s.YesterdaySales)
	return s
}

func salesChangePercent(today, yesterday decimal.Decimal) float64 {
	switch {
	case yesterday.IsPositive():
		return today.Sub(yesterday).Div(yesterday).Mul(hundred).InexactFloat64()
	case today.IsPositive():
		return 100
	default:
		return 0
	}
}
