package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (models.Order, error)
	Filter(ctx context.Context, of OrderFilter) ([]models.Order, int, error)
}
