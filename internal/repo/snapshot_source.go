package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

var ErrRepositoryNotConfigured = errors.New("repository not configured")

var _ analytics.DataSource = (*SnapshotSource)(nil)

// SnapshotSource feeds the analytics engine from the product and order
// repositories. Both collections are read in full on every call.
type SnapshotSource struct {
	productRepo ProductRepository
	orderRepo   OrderRepository
}

func NewSnapshotSource() *SnapshotSource {
	return &SnapshotSource{}
}

func (s *SnapshotSource) SetRepositories(productRepo ProductRepository, orderRepo OrderRepository) {
	s.productRepo = productRepo
	s.orderRepo = orderRepo
}

// FetchAllProducts implements analytics.DataSource.
func (s *SnapshotSource) FetchAllProducts(ctx context.Context) ([]models.Product, error) {
	if s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.productRepo.GetAll(ctx)
}

// FetchAllOrders implements analytics.DataSource.
func (s *SnapshotSource) FetchAllOrders(ctx context.Context) ([]models.Order, error) {
	if s.orderRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.orderRepo.GetAll(ctx)
}
