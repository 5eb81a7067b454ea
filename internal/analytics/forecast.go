package analytics

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/shopspring/decimal"
)

const (
	forecastDays        = 7
	forecastLabelLayout = "Jan 2"
)

var forecastVariation = decimal.NewFromFloat(0.1)

// Jitter yields uniform values in [0, 1). *rand.Rand satisfies it.
type Jitter interface {
	Float64() float64
}

type ForecastPoint struct {
	Label  string          `json:"label"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// AverageDailySales is the mean revenue of the days in the trailing 30-day
// window that had at least one order. It is zero when no such day exists.
func AverageDailySales(orders []models.Order, now time.Time) decimal.Decimal {
	loc := now.Location()
	buckets := make(map[civilDay]decimal.Decimal)
	for _, o := range orders {
		if !withinTrailingDays(o.CreatedAt, now, salesWindowDays) {
			continue
		}
		day := dayOf(o.CreatedAt, loc)
		buckets[day] = buckets[day].Add(o.TotalAmount)
	}
	if len(buckets) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, v := range buckets {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(buckets))))
}

// RevenueForecast projects the next seven days as the trailing daily average
// varied by up to ±10%. Amounts never go below zero.
func RevenueForecast(orders []models.Order, now time.Time, jitter Jitter) []ForecastPoint {
	avg := AverageDailySales(orders, now)

	points := make([]ForecastPoint, 0, forecastDays)
	for i := 1; i <= forecastDays; i++ {
		u := 2*jitter.Float64() - 1
		amount := avg.Add(avg.Mul(forecastVariation).Mul(decimal.NewFromFloat(u)))
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		target := now.AddDate(0, 0, i)
		points = append(points, ForecastPoint{
			Label:  target.Format(forecastLabelLayout),
			Date:   target.Format(time.DateOnly),
			Amount: amount.Round(2),
		})
	}
	return points
}

type globalJitter struct{}

func (globalJitter) Float64() float64 { return rand.Float64() }

// lockedJitter serialises access to a source that is not safe for concurrent use.
type lockedJitter struct {
	mu  sync.Mutex
	src Jitter
}

func (l *lockedJitter) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// SeededJitter returns a reproducible source, safe for concurrent callers.
func SeededJitter(seed uint64) Jitter {
	return &lockedJitter{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
