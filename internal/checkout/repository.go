package checkout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/orders"
)

// PostgresRepository opens checkout transactions against the shared pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return newPostgresTx(tx), nil
}

// postgresTx binds the three stores to one pgx transaction. The store code
// is the same as on the pool; only the Querier differs.
type postgresTx struct {
	tx       pgx.Tx
	products *catalog.PostgresRepository
	orders   *orders.PostgresRepository
	carts    *cart.PostgresRepository
}

func newPostgresTx(tx pgx.Tx) *postgresTx {
	return &postgresTx{
		tx:       tx,
		products: catalog.NewRepository(tx),
		orders:   orders.NewRepository(tx),
		carts:    cart.NewRepository(tx),
	}
}

func (t *postgresTx) GetProductForUpdate(ctx context.Context, productID string) (*catalog.Product, error) {
	return t.products.GetForUpdate(ctx, productID)
}

func (t *postgresTx) DecrementStock(ctx context.Context, productID string, quantity int) error {
	return t.products.DecrementStock(ctx, productID, quantity)
}

func (t *postgresTx) CreateOrder(ctx context.Context, order *orders.Order) error {
	return t.orders.Create(ctx, order)
}

func (t *postgresTx) InsertOrderItems(ctx context.Context, items []orders.Item) error {
	return t.orders.InsertItems(ctx, items)
}

func (t *postgresTx) SetOrderTotal(ctx context.Context, order *orders.Order) error {
	return t.orders.SetTotal(ctx, order)
}

func (t *postgresTx) ClearCart(ctx context.Context, userID string) error {
	return t.carts.Clear(ctx, userID)
}

func (t *postgresTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *postgresTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
