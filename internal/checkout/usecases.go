// Package checkout converts a user's cart into a durable order. The whole
// conversion — order insert, per-line stock reservation, item snapshots,
// total, cart clear — happens in one database transaction, so a failed
// checkout leaves no trace.
package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/orders"
	"github.com/storelab/storefront/pkg/logging"
)

// Tx is one atomic unit of work. Every write below either commits together
// or rolls back together.
type Tx interface {
	// GetProductForUpdate locks the product row until commit or rollback,
	// which serializes concurrent reservations on the same product.
	GetProductForUpdate(ctx context.Context, productID string) (*catalog.Product, error)
	DecrementStock(ctx context.Context, productID string, quantity int) error
	CreateOrder(ctx context.Context, order *orders.Order) error
	InsertOrderItems(ctx context.Context, items []orders.Item) error
	SetOrderTotal(ctx context.Context, order *orders.Order) error
	ClearCart(ctx context.Context, userID string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Repository opens checkout transactions.
type Repository interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// CartReader supplies the checkout input.
type CartReader interface {
	ListItems(ctx context.Context, userID string) ([]cart.Item, error)
}

// OrderReader re-reads the committed order for the response.
type OrderReader interface {
	Get(ctx context.Context, id, userID string) (*orders.Order, error)
}

// UseCase is the checkout transaction engine.
type UseCase struct {
	repository Repository
	carts      CartReader
	orders     OrderReader
	tracer     trace.Tracer
	checkouts  metric.Int64Counter
}

func NewUseCase(repository Repository, carts CartReader, orderReader OrderReader, tracer trace.Tracer) *UseCase {
	checkouts, err := otel.Meter("storefront/checkout").Int64Counter(
		"checkout_attempts_total",
		metric.WithDescription("Checkout attempts by result."),
	)
	if err != nil {
		logging.Log(logging.Fields{Component: "checkout", Status: "meter_init_failed", Error: err.Error()})
	}

	return &UseCase{
		repository: repository,
		carts:      carts,
		orders:     orderReader,
		tracer:     tracer,
		checkouts:  checkouts,
	}
}

// Checkout builds a pending order from the user's cart.
//
// Failure at any step rolls the transaction back: no order, no order items,
// no stock decrement, and the cart keeps its lines. On success the cart is
// cleared within the same commit, so a crash can never lose the order while
// keeping the cart — the clear is durable exactly when the order is.
func (uc *UseCase) Checkout(ctx context.Context, userID, shippingAddress string) (*orders.Order, error) {
	ctx, span := uc.tracer.Start(ctx, "checkout")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	cartItems, err := uc.carts.ListItems(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(cartItems) == 0 {
		// A concurrent checkout that committed first leaves the loser here,
		// which is the intended double-submit outcome: one order, one error.
		uc.record(ctx, "empty_cart")
		return nil, &domain.EmptyCartError{UserID: userID}
	}

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := orders.NewOrder(userID, shippingAddress)
	if err := tx.CreateOrder(ctx, order); err != nil {
		span.RecordError(err)
		return nil, err
	}

	total := decimal.Zero
	orderItems := make([]orders.Item, 0, len(cartItems))
	for _, line := range cartItems {
		product, err := tx.GetProductForUpdate(ctx, line.ProductID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		if product.StockQuantity < line.Quantity {
			err := domain.NewInsufficientStock(product.Name, line.Quantity, product.StockQuantity)
			span.RecordError(err)
			uc.record(ctx, "insufficient_stock")
			return nil, err
		}

		if err := tx.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
			span.RecordError(err)
			return nil, err
		}

		item := orders.NewItem(order.ID, product, line.Quantity)
		orderItems = append(orderItems, item)
		total = total.Add(item.Subtotal)
	}

	if err := tx.InsertOrderItems(ctx, orderItems); err != nil {
		span.RecordError(err)
		return nil, err
	}

	order.TotalAmount = total
	if err := tx.SetOrderTotal(ctx, order); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := tx.ClearCart(ctx, userID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	uc.record(ctx, "success")
	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("total_amount", domain.Money(order.TotalAmount)),
	)
	logging.Log(logging.Fields{
		Component: "checkout",
		UserID:    userID,
		OrderID:   order.ID,
		Status:    "committed",
	})

	return uc.orders.Get(ctx, order.ID, userID)
}

func (uc *UseCase) record(ctx context.Context, result string) {
	if uc.checkouts == nil {
		return
	}
	uc.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
