package analytics_test

import (
	"testing"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTrendingProducts_DistinctSales(t *testing.T) {
	products := []models.Product{
		product("A", 10, 10),
		product("B", 10, 50),
		product("C", 10, 0),
		product("D", 10, 30),
		product("E", 10, 20),
		product("F", 10, 40),
		product("G", 10, 5),
	}

	tr := analytics.TrendingProducts(products)

	assert.Equal(t, []string{"B", "F", "D"}, ids(tr.Rising))
	assert.Equal(t, []string{"G", "A", "E"}, ids(tr.Falling))
	for _, r := range tr.Rising {
		assert.NotContains(t, ids(tr.Falling), r.ID)
	}
}

func TestTrendingProducts_TiesKeepInputOrder(t *testing.T) {
	products := []models.Product{
		product("P1", 10, 5),
		product("P2", 10, 5),
		product("P3", 10, 5),
		product("P4", 10, 5),
	}

	tr := analytics.TrendingProducts(products)

	assert.Equal(t, []string{"P1", "P2", "P3"}, ids(tr.Rising))
	assert.Equal(t, []string{"P1", "P2", "P3"}, ids(tr.Falling))
}

func TestTrendingProducts_ZeroSalesNeverFalling(t *testing.T) {
	products := []models.Product{
		product("A", 10, 0),
		product("B", 10, 3),
		product("C", 10, 0),
	}

	tr := analytics.TrendingProducts(products)

	assert.Equal(t, []string{"B", "A", "C"}, ids(tr.Rising))
	assert.Equal(t, []string{"B"}, ids(tr.Falling))
}

func TestTrendingProducts_Empty(t *testing.T) {
	tr := analytics.TrendingProducts(nil)

	assert.NotNil(t, tr.Rising)
	assert.NotNil(t, tr.Falling)
	assert.Empty(t, tr.Rising)
	assert.Empty(t, tr.Falling)
}

func TestTrendingProducts_DoesNotReorderInput(t *testing.T) {
	products := []models.Product{product("A", 1, 1), product("B", 1, 9), product("C", 1, 4)}

	analytics.TrendingProducts(products)

	assert.Equal(t, []string{"A", "B", "C"}, ids(products))
}
