package repo

import (
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

type OrderFilter struct {
	Status *models.OrderStatus
	UserID string
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
