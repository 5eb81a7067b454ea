package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	repo "github.com/rogerio-castellano/storefront-analytics/internal/repo"
)

// orderFromRequest expects a request that already passed validateOrder.
func orderFromRequest(req OrderRequest) models.Order {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	status, _ := models.ParseOrderStatus(req.Status)

	o := models.Order{
		ID:          id,
		UserID:      strings.TrimSpace(req.UserID),
		TotalAmount: req.TotalAmount,
		Status:      status,
		Items:       slices.Clone(req.Items),
	}
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
	if req.CreatedAt != nil {
		o.CreatedAt = *req.CreatedAt
	}
	return o
}

// CreateOrderHandler godoc
// @Summary Record an order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body OrderRequest true "Order to record"
// @Success 201 {object} models.Order
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Duplicated id"
// @Router /orders [post]
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateOrder(req); len(validationErrors) > 0 {
		respond(w, r, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := orderRepo.Create(r.Context(), orderFromRequest(req))
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		http.Error(w, "could not create order: id duplicated", http.StatusConflict)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "could not create order", slog.Any("error", err))
		http.Error(w, "could not create order", http.StatusInternalServerError)
		return
	}

	respond(w, r, http.StatusCreated, created)
}

// GetOrdersHandler godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param status query string false "Order status"
// @Param user_id query string false "Customer id"
// @Param since query string false "Created at or after (RFC3339)"
// @Param until query string false "Created at or before (RFC3339)"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {object} OrdersSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
func GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	of := repo.OrderFilter{UserID: r.URL.Query().Get("user_id")}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		of.Status = &status
	}

	var err error
	if of.Since, err = queryTime(r, "since"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if of.Until, err = queryTime(r, "until"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if of.Offset, err = queryInt(r, "offset"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if of.Limit, err = queryInt(r, "limit"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orders, total, err := orderRepo.Filter(r.Context(), of)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not fetch orders", slog.Any("error", err))
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}

	respond(w, r, http.StatusOK, OrdersSearchResult{Data: orders, Meta: Meta{TotalCount: total}})
}

// GetOrderByIDHandler godoc
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /orders/{id} [get]
func GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	order, err := orderRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repo.ErrOrderNotFound) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "could not fetch order", http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, order)
}
