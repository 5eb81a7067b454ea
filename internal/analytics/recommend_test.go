package analytics_test

import (
	"testing"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendations_LowStockAlwaysRestock(t *testing.T) {
	for _, sales := range []int{0, 1, 1000} {
		products := []models.Product{product("p", 5, sales), product("q", 100, 500)}

		recs := analytics.Recommendations(products)

		require.NotEmpty(t, recs)
		assert.Equal(t, "p", recs[0].Product.ID)
		assert.Equal(t, analytics.RecommendRestock, recs[0].Type)
		assert.Equal(t, analytics.PriorityHigh, recs[0].Priority)
	}
}

func TestRecommendations_NoSalesIsPromote(t *testing.T) {
	recs := analytics.Recommendations([]models.Product{product("p", 10, 0), product("q", 200, 0)})

	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, analytics.RecommendPromote, r.Type)
		assert.Equal(t, analytics.PriorityMedium, r.Priority)
	}
}

func TestRecommendations_Classification(t *testing.T) {
	// Average sales: (100 + 10 + 40 + 70) / 4 = 55.
	products := []models.Product{
		product("best", 20, 100),
		product("slow", 20, 10),
		product("heavy", 60, 40),
		product("steady", 20, 70),
	}

	recs := analytics.Recommendations(products)

	require.Len(t, recs, 2)
	assert.Equal(t, "slow", recs[0].Product.ID)
	assert.Equal(t, analytics.RecommendDiscount, recs[0].Type)
	assert.Equal(t, analytics.PriorityMedium, recs[0].Priority)
	assert.Equal(t, "heavy", recs[1].Product.ID)
	assert.Equal(t, analytics.RecommendClearance, recs[1].Type)
	assert.Equal(t, analytics.PriorityLow, recs[1].Priority)
}

func TestRecommendations_SortedByPriorityStableWithinTier(t *testing.T) {
	// Average sales: (20 + 10 + 0 + 100 + 0 + 10) / 6 = 23.33.
	products := []models.Product{
		product("clear", 80, 20),
		product("restock-1", 3, 10),
		product("promote", 15, 0),
		product("fine", 20, 100),
		product("restock-2", 0, 0),
		product("discount", 20, 10),
	}

	recs := analytics.Recommendations(products)

	got := make([]string, len(recs))
	for i, r := range recs {
		got[i] = r.Product.ID
	}
	assert.Equal(t, []string{"restock-1", "restock-2", "promote", "discount", "clear"}, got)

	seenLow := false
	for _, r := range recs {
		if r.Priority == analytics.PriorityLow {
			seenLow = true
			continue
		}
		assert.False(t, seenLow, "%s entry after a LOW entry", r.Priority)
	}
}

func TestRecommendations_Messages(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Dark Bar", StockLevel: 4, SalesCount: 10},
		{ID: "2", Name: "Milk Bar", StockLevel: 30, SalesCount: 0},
	}

	recs := analytics.Recommendations(products)

	require.Len(t, recs, 2)
	assert.Equal(t, "Restock Dark Bar - only 4 units left", recs[0].Message)
	assert.Equal(t, "Promote Milk Bar - no sales recorded yet", recs[1].Message)
}

func TestRecommendations_Empty(t *testing.T) {
	recs := analytics.Recommendations(nil)

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}
