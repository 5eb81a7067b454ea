package repo_test

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSource(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured", func(t *testing.T) {
		s := repo.NewSnapshotSource()
		_, err := s.FetchAllProducts(ctx)
		assert.ErrorIs(t, err, repo.ErrRepositoryNotConfigured)
		_, err = s.FetchAllOrders(ctx)
		assert.ErrorIs(t, err, repo.ErrRepositoryNotConfigured)
	})

	t.Run("feeds the engine", func(t *testing.T) {
		products := repo.NewInMemoryProductRepository()
		orders := repo.NewInMemoryOrderRepository()
		seedProducts(t, products)
		seedOrders(t, orders)

		s := repo.NewSnapshotSource()
		s.SetRepositories(products, orders)

		d, err := analytics.NewEngine(s).GetDashboard(ctx, day)
		require.NoError(t, err)
		assert.True(t, d.DataAvailable)
		assert.Equal(t, 3, d.Stats.TotalProducts)
		assert.Equal(t, 3, d.Stats.TotalOrders)
		assert.Equal(t, 1, d.Stats.TotalDeliveries)
		assert.Equal(t, 2, d.Stats.TotalCustomers)
	})
}
