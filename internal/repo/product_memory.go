package repo

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.MinStock != nil && p.StockLevel < *pf.MinStock {
		return false
	}
	if pf.MaxStock != nil && p.StockLevel > *pf.MaxStock {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	start, end := pageBounds(pf.Offset, pf.Limit, len(filtered))
	return filtered[start:end], len(filtered), nil
}

// Create adds a new product to the repository. Ids are assigned by the caller.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == product.ID {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	r.products = append(r.products, product)
	return product, nil
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetAll returns a copy of every stored product.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func pageBounds(offset, limit *int, total int) (int, int) {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, total)
	}

	end := total
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, total)
	}
	return start, end
}
