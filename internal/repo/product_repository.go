package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
}
