package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

const (
	orderColumns = `id, user_id, total_amount, order_status, created_at`
	itemColumns  = `order_id, product_id, quantity`
)

// snapshotTxOptions makes the order and item reads see the same data.
var snapshotTxOptions = &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}

type PostgresOrderRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db, timeout: defaultQueryTimeout}
}

func (r *PostgresOrderRepository) SetQueryTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Create inserts the order and its line items in one transaction.
func (r *PostgresOrderRepository) Create(ctx context.Context, o models.Order) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt sql.NullTime
	if o.HasTimestamp() {
		createdAt = sql.NullTime{Time: o.CreatedAt, Valid: true}
	}

	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, query, o.ID, o.UserID, o.TotalAmount, string(o.Status), createdAt); err != nil {
		return models.Order{}, translatePgError(err)
	}

	for i, item := range o.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, position, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			o.ID, i, item.ProductID, item.Quantity)
		if err != nil {
			return models.Order{}, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}
	return o, nil
}

// GetAll reads every order with its items in one read-only transaction.
func (r *PostgresOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, snapshotTxOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	orders, err := scanOrders(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	itemRows, err := tx.QueryContext(ctx, `SELECT `+itemColumns+` FROM order_items ORDER BY order_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	err = attachItems(itemRows, orders)
	itemRows.Close()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return orders, nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, snapshotTxOptions)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		o         models.Order
		status    string
		createdAt sql.NullTime
	)
	err = tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.TotalAmount, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	o.Status = models.OrderStatus(status)
	if createdAt.Valid {
		o.CreatedAt = createdAt.Time
	}

	rows, err := tx.QueryContext(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY position`, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to query order items: %w", err)
	}
	orders := []models.Order{o}
	err = attachItems(rows, orders)
	rows.Close()
	if err != nil {
		return models.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit read: %w", err)
	}
	return orders[0], nil
}

func (r *PostgresOrderRepository) Filter(ctx context.Context, of OrderFilter) ([]models.Order, int, error) {
	whereClause, args := buildOrderWhereClause(of)

	if of.Offset != nil && *of.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}
	if of.Offset != nil && *of.Offset >= total {
		return []models.Order{}, total, nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders ` + whereClause + ` ORDER BY created_at DESC NULLS LAST, id`
	argIndex := len(args) + 1
	if of.Limit != nil && *of.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *of.Limit)
		argIndex++
	}
	if of.Offset != nil && *of.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *of.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	orders, err := scanOrders(rows)
	rows.Close()
	if err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	itemRows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	if err := attachItems(itemRows, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func buildOrderWhereClause(of OrderFilter) (string, []any) {
	whereClause := "WHERE 1=1"
	args := []any{}

	if of.Status != nil {
		args = append(args, string(*of.Status))
		whereClause += fmt.Sprintf(" AND order_status = $%d", len(args))
	}
	if of.UserID != "" {
		args = append(args, of.UserID)
		whereClause += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if of.Since != nil {
		args = append(args, *of.Since)
		whereClause += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if of.Until != nil {
		args = append(args, *of.Until)
		whereClause += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return whereClause, args
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		var (
			o         models.Order
			status    string
			createdAt sql.NullTime
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Status = models.OrderStatus(status)
		if createdAt.Valid {
			o.CreatedAt = createdAt.Time
		}
		o.Items = []models.OrderItem{}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func attachItems(rows *sql.Rows, orders []models.Order) error {
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}

	for rows.Next() {
		var orderID string
		var item models.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}
