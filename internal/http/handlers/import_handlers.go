package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
	repo "github.com/rogerio-castellano/storefront-analytics/internal/repo"
	"github.com/shopspring/decimal"
)

// csvRecord is one data row keyed by lower-cased header name.
type csvRecord map[string]string

func parseCSV(file multipart.File, required ...string) ([]csvRecord, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []csvRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRecord{}
		for name, i := range index {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseIntField(row csvRecord, name string) (int, error) {
	raw := row[name]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func parseDecimalField(row csvRecord, name string) (decimal.Decimal, error) {
	raw := row[name]
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func productRequestFromRow(row csvRecord) (ProductRequest, error) {
	price, err := parseDecimalField(row, "price")
	if err != nil {
		return ProductRequest{}, err
	}
	stock, err := parseIntField(row, "stock_level")
	if err != nil {
		return ProductRequest{}, err
	}
	sales, err := parseIntField(row, "sales_count")
	if err != nil {
		return ProductRequest{}, err
	}
	return ProductRequest{
		ID:         row["id"],
		Name:       row["name"],
		Category:   row["category"],
		Price:      price,
		StockLevel: stock,
		SalesCount: sales,
	}, nil
}

// parseItems reads "product:qty" pairs separated by semicolons.
func parseItems(raw string) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	if raw == "" {
		return items, nil
	}
	for _, part := range strings.Split(raw, ";") {
		productID, qty, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, expected product:quantity", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in item %q", part)
		}
		items = append(items, models.OrderItem{ProductID: strings.TrimSpace(productID), Quantity: n})
	}
	return items, nil
}

func orderRequestFromRow(row csvRecord) (OrderRequest, error) {
	amount, err := parseDecimalField(row, "total_amount")
	if err != nil {
		return OrderRequest{}, err
	}
	items, err := parseItems(row["items"])
	if err != nil {
		return OrderRequest{}, err
	}

	req := OrderRequest{
		ID:          row["id"],
		UserID:      row["user_id"],
		TotalAmount: amount,
		Status:      row["order_status"],
		Items:       items,
	}
	if raw := row["created_at"]; raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return OrderRequest{}, errors.New("invalid created_at, expected RFC3339")
		}
		req.CreatedAt = &t
	}
	return req, nil
}

func rowError(rowNum int, format string, args ...any) ValidationError {
	return ValidationError{Description: fmt.Sprintf("row %d: ", rowNum) + fmt.Sprintf(format, args...)}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: id,name,category,price,stock_level,sales_count. Rows without id get a generated one.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file, "name")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		req, err := productRequestFromRow(rec)
		if err != nil {
			errorsList = append(errorsList, rowError(rowNum, "%v", err))
			continue
		}
		if verrs := validateProduct(req); len(verrs) > 0 {
			errorsList = append(errorsList, rowError(rowNum, "%s", joinDescriptions(verrs)))
			continue
		}

		product := productFromRequest(req)
		_, err = productRepo.Create(r.Context(), product)
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			if mode == "skip" {
				errorsList = append(errorsList, rowError(rowNum, "product '%s' already exists", product.ID))
				continue
			}
			_, err = productRepo.Update(r.Context(), product)
		}
		if err != nil {
			errorsList = append(errorsList, rowError(rowNum, "failed to store '%s'", product.ID))
			continue
		}
		imported++
	}

	slog.InfoContext(r.Context(), "products imported",
		slog.Int("imported", imported), slog.Int("rejected", len(errorsList)), slog.String("mode", mode))
	respond(w, r, http.StatusOK, ImportResult{Imported: imported, Errors: errorsList})
}

// ImportOrdersHandler godoc
// @Summary Import orders via CSV
// @Description Columns: id,user_id,total_amount,order_status,created_at,items. Items are "product:quantity" pairs separated by ";". created_at is RFC3339 and may be empty.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportResult
// @Failure 400 {string} string "Invalid file"
// @Router /orders/import [post]
func ImportOrdersHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file, "user_id", "total_amount", "order_status")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ValidationError{}

	for i, rec := range records {
		rowNum := i + 2

		req, err := orderRequestFromRow(rec)
		if err != nil {
			errorsList = append(errorsList, rowError(rowNum, "%v", err))
			continue
		}
		if verrs := validateOrder(req); len(verrs) > 0 {
			errorsList = append(errorsList, rowError(rowNum, "%s", joinDescriptions(verrs)))
			continue
		}

		order := orderFromRequest(req)
		if _, err := orderRepo.Create(r.Context(), order); err != nil {
			if errors.Is(err, repo.ErrDuplicatedValueUnique) {
				errorsList = append(errorsList, rowError(rowNum, "order '%s' already exists", order.ID))
			} else {
				errorsList = append(errorsList, rowError(rowNum, "failed to store '%s'", order.ID))
			}
			continue
		}
		imported++
	}

	slog.InfoContext(r.Context(), "orders imported", slog.Int("imported", imported), slog.Int("rejected", len(errorsList)))
	respond(w, r, http.StatusOK, ImportResult{Imported: imported, Errors: errorsList})
}
