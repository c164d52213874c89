package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/postgres"
)

// Repository defines the product persistence operations.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	GetAny(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Product, int, error)
}

const productColumns = `id, name, description, price, stock_quantity, category, COALESCE(image_url, ''), is_active, created_at, updated_at`

// PostgresRepository implements Repository over a postgres.Querier, so it
// can run against the pool or inside a transaction.
type PostgresRepository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, stock_quantity, category, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)
	`, product.ID, product.Name, product.Description, product.Price, product.StockQuantity,
		product.Category, product.ImageURL, product.IsActive, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Get returns an active product. Deactivated products are invisible here.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND is_active = TRUE
	`, id)
	return scanProduct(row, id)
}

// GetAny returns a product regardless of its active flag. Admin paths use
// it so a deactivated product can still be edited.
func (r *PostgresRepository) GetAny(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	return scanProduct(row, id)
}

// GetForUpdate locks the product row for the rest of the transaction.
// Stock checks against the returned value stay valid until commit, which
// is what keeps two concurrent checkouts from both passing the same check.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND is_active = TRUE
		FOR UPDATE
	`, id)
	return scanProduct(row, id)
}

// DecrementStock writes the reservation. The caller has already verified
// sufficiency against the locked row; the CHECK constraint on the column
// backstops it.
func (r *PostgresRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2,
		    updated_at = NOW()
		WHERE id = $1
	`, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock_quantity = $5,
		    category = $6, image_url = NULLIF($7, ''), is_active = $8, updated_at = NOW()
		WHERE id = $1
	`, product.ID, product.Name, product.Description, product.Price, product.StockQuantity,
		product.Category, product.ImageURL, product.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: product.ID}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// List applies the optional filters and returns one page plus the total
// match count, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	where := []string{"is_active = TRUE"}
	args := []any{}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Page * limit
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
			&p.Category, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read products: %w", err)
	}

	return products, total, nil
}

func scanProduct(row pgx.Row, id string) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.Category, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}
