package analytics

import (
	"cmp"
	"slices"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

const trendSize = 3

// Trending holds the best and worst sellers. Products that never sold are
// left to the PROMOTE recommendation rather than listed as falling.
type Trending struct {
	Rising  []models.Product `json:"rising"`
	Falling []models.Product `json:"falling"`
}

// TrendingProducts ranks products by lifetime sales. Both sorts are stable,
// so equal sales counts keep their input order.
func TrendingProducts(products []models.Product) Trending {
	byDesc := slices.Clone(products)
	slices.SortStableFunc(byDesc, func(a, b models.Product) int {
		return cmp.Compare(b.SalesCount, a.SalesCount)
	})

	selling := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.SalesCount > 0 {
			selling = append(selling, p)
		}
	}
	slices.SortStableFunc(selling, func(a, b models.Product) int {
		return cmp.Compare(a.SalesCount, b.SalesCount)
	})

	return Trending{
		Rising:  head(byDesc, trendSize),
		Falling: head(selling, trendSize),
	}
}

// head returns a copy of the first n elements, never nil.
func head[T any](s []T, n int) []T {
	n = min(n, len(s))
	out := make([]T, n)
	copy(out, s[:n])
	return out
}
