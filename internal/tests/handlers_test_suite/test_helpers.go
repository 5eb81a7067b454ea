package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/analytics"
	handler "github.com/rogerio-castellano/storefront-analytics/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	"github.com/rogerio-castellano/storefront-analytics/internal/repo"
)

var (
	productRepo    *repo.InMemoryProductRepository
	orderRepo      *repo.InMemoryOrderRepository
	dashboardCache *repo.InMemoryDashboardCache

	fixedNow = time.Date(2026, time.October, 17, 15, 0, 0, 0, time.UTC)
)

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewInMemoryOrderRepository()
	handler.SetOrderRepo(orderRepo)

	source := repo.NewSnapshotSource()
	source.SetRepositories(productRepo, orderRepo)
	handler.SetDashboardProvider(analytics.NewEngine(source, analytics.WithJitter(analytics.SeededJitter(7))))

	dashboardCache = repo.NewInMemoryDashboardCache(0)
	handler.SetDashboardCache(dashboardCache)

	handler.SetClock(func() time.Time { return fixedNow })
}

func clearAll() {
	productRepo.Clear()
	orderRepo.Clear()
	dashboardCache.Clear()
}

// unavailableSource fails every fetch, as a storefront that is down would.
type unavailableSource struct{}

func (unavailableSource) FetchAllProducts(context.Context) ([]models.Product, error) {
	return nil, errors.New("storefront unreachable")
}

func (unavailableSource) FetchAllOrders(context.Context) ([]models.Order, error) {
	return nil, errors.New("storefront unreachable")
}

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return postJSON(r, "/products", p)
}

func createOrder(r http.Handler, o handler.OrderRequest) *httptest.ResponseRecorder {
	return postJSON(r, "/orders", o)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func uploadCSV(r http.Handler, path, csvContent string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, "data.csv")
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func at(t time.Time) *time.Time {
	return &t
}
