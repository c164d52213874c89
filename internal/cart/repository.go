package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/postgres"
)

// Repository defines the cart persistence operations.
type Repository interface {
	ListItems(ctx context.Context, userID string) ([]Item, error)
	Get(ctx context.Context, id, userID string) (*Item, error)
	Upsert(ctx context.Context, item *Item) (string, error)
	UpdateQuantity(ctx context.Context, id, userID string, quantity int) error
	Delete(ctx context.Context, id, userID string) error
	Clear(ctx context.Context, userID string) error
}

// PostgresRepository implements Repository over a postgres.Querier. Clear
// participates in the checkout transaction when constructed with its Tx.
type PostgresRepository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemSelect = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
	       p.id, p.name, p.description, p.price, p.stock_quantity, p.category,
	       COALESCE(p.image_url, ''), p.is_active, p.created_at, p.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
`

// ListItems returns the user's cart in insertion order, with the live
// product resolved on each line.
func (r *PostgresRepository) ListItems(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, itemSelect+`
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*Item, error) {
	rows, err := r.db.Query(ctx, itemSelect+`
		WHERE ci.id = $1 AND ci.user_id = $2
	`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get cart item: %w", err)
		}
		return nil, &domain.NotFoundError{Entity: "cart item", ID: id}
	}
	return scanItem(rows)
}

// Upsert inserts the line or, when the (user, product) pair already exists,
// adds the quantity onto the existing row. Returns the id of the row that
// ended up holding the line.
func (r *PostgresRepository) Upsert(ctx context.Context, item *Item) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id
	`, item.ID, item.UserID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, id, userID string, quantity int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "cart item", ID: id}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "cart item", ID: id}
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func scanItem(row pgx.Rows) (*Item, error) {
	var item Item
	var p catalog.Product
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.Category,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "cart item", ID: item.ID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}
	item.Product = &p
	return &item, nil
}
