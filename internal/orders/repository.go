package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/postgres"
)

// Repository defines the order persistence operations. The write methods
// are only ever called by the checkout engine on its transaction.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	InsertItems(ctx context.Context, items []Item) error
	SetTotal(ctx context.Context, order *Order) error
	Get(ctx context.Context, id, userID string) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

const orderColumns = `id, user_id, total_amount, status, shipping_address, created_at, updated_at`

// PostgresRepository implements Repository over a postgres.Querier.
type PostgresRepository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_amount, status, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, order.ID, order.UserID, order.TotalAmount, order.Status, order.ShippingAddress,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) InsertItems(ctx context.Context, items []Item) error {
	for _, item := range items {
		_, err := r.db.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.Price, item.Quantity, item.Subtotal)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) SetTotal(ctx context.Context, order *Order) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders
		SET total_amount = $2, updated_at = NOW()
		WHERE id = $1
	`, order.ID, order.TotalAmount)
	if err != nil {
		return fmt.Errorf("failed to set order total: %w", err)
	}
	return nil
}

// Get returns an order with its items, ownership-checked.
func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*Order, error) {
	return r.getWhere(ctx, `WHERE id = $1 AND user_id = $2`, id, userID)
}

// GetByID is the privileged lookup without an ownership check.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	return r.getWhere(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) getWhere(ctx context.Context, where string, args ...any) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders `+where,
		args...).Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "order", ID: fmt.Sprint(args[0])}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadItems(ctx, []*Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.listWhere(ctx, `WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.listWhere(ctx, ``)
}

func (r *PostgresRepository) listWhere(ctx context.Context, where string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders `+where+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var order Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
			&order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	refs := make([]*Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems attaches items to the given orders in one query.
func (r *PostgresRepository) loadItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []Item{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, price, quantity, subtotal
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Price, &item.Quantity, &item.Subtotal); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read order items: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	return nil
}
