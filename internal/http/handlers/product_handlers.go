package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	repo "github.com/rogerio-castellano/storefront-analytics/internal/repo"
)

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.CategoryOrDefault(),
		Price:      p.Price,
		StockLevel: p.StockLevel,
		SalesCount: p.SalesCount,
		LowStock:   p.StockLevel < analytics.LowStockLevel,
	}
}

func productFromRequest(req ProductRequest) models.Product {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return models.Product{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Category:   strings.ToUpper(strings.TrimSpace(req.Category)),
		Price:      req.Price,
		StockLevel: req.StockLevel,
		SalesCount: req.SalesCount,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Duplicated id"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		respond(w, r, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.Create(r.Context(), productFromRequest(req))
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		http.Error(w, "could not create product: id duplicated", http.StatusConflict)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "could not create product", slog.Any("error", err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	respond(w, r, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param name query string false "Name contains (case insensitive)"
// @Param category query string false "Category"
// @Param min_stock query int false "Minimum stock level"
// @Param max_stock query int false "Maximum stock level"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	pf := repo.ProductFilter{
		Name:     r.URL.Query().Get("name"),
		Category: r.URL.Query().Get("category"),
	}
	var err error
	for key, dst := range map[string]**int{
		"min_stock": &pf.MinStock,
		"max_stock": &pf.MaxStock,
		"offset":    &pf.Offset,
		"limit":     &pf.Limit,
	} {
		if *dst, err = queryInt(r, key); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	products, total, err := productRepo.Filter(r.Context(), pf)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not fetch products", slog.Any("error", err))
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	data := make([]ProductResponse, len(products))
	for i, p := range products {
		data[i] = toProductResponse(p)
	}
	respond(w, r, http.StatusOK, ProductsSearchResult{Data: data, Meta: Meta{TotalCount: total}})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repo.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(product))
}
