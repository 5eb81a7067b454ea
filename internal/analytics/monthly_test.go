package analytics_test

import (
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmissibleYears(t *testing.T) {
	assert.Equal(t, []int{2025, 2026}, analytics.AdmissibleYears(refNow))
}

func TestMonthlyRevenue(t *testing.T) {
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}
	orders := []models.Order{
		order("1", "u1", "100", at(2026, time.January, 5)),
		order("2", "u1", "50", at(2025, time.January, 20)),
		order("3", "u1", "999", at(2024, time.March, 1)),
		order("4", "u1", "10", at(2026, time.December, 31)),
		order("5", "u1", "7.5", time.Time{}),
	}

	months := analytics.MonthlyRevenue(orders, analytics.AdmissibleYears(refNow), time.UTC)

	require.Len(t, months, 12)
	assert.True(t, dec("150").Equal(months[0]), "January = %s", months[0])
	assert.True(t, months[2].IsZero(), "orders outside the chart years must be ignored")
	assert.True(t, dec("10").Equal(months[11]))
}

func TestMonthlyRevenue_Empty(t *testing.T) {
	months := analytics.MonthlyRevenue(nil, analytics.AdmissibleYears(refNow), time.UTC)

	require.Len(t, months, 12)
	for i, m := range months {
		assert.True(t, m.IsZero(), "month %d", i+1)
	}
}
