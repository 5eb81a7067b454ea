package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: []models.Order{},
	}
}

func (r *InMemoryOrderRepository) Create(_ context.Context, order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == order.ID {
			return models.Order{}, ErrDuplicatedValueUnique
		}
	}
	order.Items = slices.Clone(order.Items)
	r.orders = append(r.orders, order)
	return order, nil
}

// GetAll returns a deep copy of every stored order, in insertion order.
func (r *InMemoryOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, len(r.orders))
	for i, o := range r.orders {
		o.Items = slices.Clone(o.Items)
		out[i] = o
	}
	return out, nil
}

func (r *InMemoryOrderRepository) GetByID(_ context.Context, id string) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			o.Items = slices.Clone(o.Items)
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func matchesOrderFilter(o models.Order, of OrderFilter) bool {
	if of.Status != nil && o.Status != *of.Status {
		return false
	}
	if of.UserID != "" && o.UserID != of.UserID {
		return false
	}
	if of.Since != nil && (!o.HasTimestamp() || o.CreatedAt.Before(*of.Since)) {
		return false
	}
	if of.Until != nil && (!o.HasTimestamp() || o.CreatedAt.After(*of.Until)) {
		return false
	}
	return true
}

// Filter returns the matching orders, optionally paginated, plus the total
// number of matches.
func (r *InMemoryOrderRepository) Filter(_ context.Context, of OrderFilter) ([]models.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Order{}
	for _, o := range r.orders {
		if matchesOrderFilter(o, of) {
			o.Items = slices.Clone(o.Items)
			filtered = append(filtered, o)
		}
	}

	start, end := pageBounds(of.Offset, of.Limit, len(filtered))
	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryOrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = []models.Order{}
}
