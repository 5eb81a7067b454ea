package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/rogerio-castellano/storefront-analytics/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func seedOrders(t *testing.T, r *repo.InMemoryOrderRepository) {
	t.Helper()
	for _, o := range []models.Order{
		{ID: "a", UserID: "u1", TotalAmount: decimal.NewFromInt(10), Status: models.OrderStatusPending, CreatedAt: day,
			Items: []models.OrderItem{{ProductID: "p1", Quantity: 2}}},
		{ID: "b", UserID: "u2", TotalAmount: decimal.NewFromInt(20), Status: models.OrderStatusDelivered, CreatedAt: day.AddDate(0, 0, 2)},
		{ID: "c", UserID: "u1", TotalAmount: decimal.NewFromInt(30), Status: models.OrderStatusPending},
	} {
		_, err := r.Create(context.Background(), o)
		require.NoError(t, err)
	}
}

func TestInMemoryOrderRepository_CreateRejectsDuplicates(t *testing.T) {
	r := repo.NewInMemoryOrderRepository()
	seedOrders(t, r)

	_, err := r.Create(context.Background(), models.Order{ID: "a"})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)
}

func TestInMemoryOrderRepository_GetAllIsDeepCopy(t *testing.T) {
	r := repo.NewInMemoryOrderRepository()
	seedOrders(t, r)
	ctx := context.Background()

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	all[0].Items[0].Quantity = 99

	o, err := r.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, o.Items[0].Quantity)

	_, err = r.GetByID(ctx, "zzz")
	assert.ErrorIs(t, err, repo.ErrOrderNotFound)
}

func TestInMemoryOrderRepository_Filter(t *testing.T) {
	r := repo.NewInMemoryOrderRepository()
	seedOrders(t, r)

	tests := []struct {
		name      string
		filter    repo.OrderFilter
		wantIDs   []string
		wantTotal int
	}{
		{"status", repo.OrderFilter{Status: ptr(models.OrderStatusPending)}, []string{"a", "c"}, 2},
		{"user", repo.OrderFilter{UserID: "u2"}, []string{"b"}, 1},
		{"since excludes untimed", repo.OrderFilter{Since: ptr(day.AddDate(0, 0, 1))}, []string{"b"}, 1},
		{"until", repo.OrderFilter{Until: ptr(day)}, []string{"a"}, 1},
		{"limit", repo.OrderFilter{Limit: ptr(2)}, []string{"a", "b"}, 3},
		{"offset past end keeps the total", repo.OrderFilter{Offset: ptr(10)}, []string{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := r.Filter(context.Background(), tt.filter)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, o := range got {
				ids[i] = o.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}
