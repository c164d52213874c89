package cart

import (
	"context"

	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/pkg/logging"
)

// ProductGetter is the slice of the catalog the cart needs: resolving a
// product and reading its live stock for the pre-checks.
type ProductGetter interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// UseCase contains the cart business logic. The stock checks here are UX
// pre-checks only; the authoritative reservation happens at checkout.
type UseCase struct {
	repository Repository
	products   ProductGetter
}

func NewUseCase(repository Repository, products ProductGetter) *UseCase {
	return &UseCase{repository: repository, products: products}
}

// AddItem validates the product and its live stock, then inserts the line
// or increments an existing one for the same product.
func (uc *UseCase) AddItem(ctx context.Context, userID, productID string, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	product, err := uc.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < quantity {
		return nil, domain.NewInsufficientStock(product.Name, quantity, product.StockQuantity)
	}

	id, err := uc.repository.Upsert(ctx, NewItem(userID, productID, quantity))
	if err != nil {
		return nil, err
	}

	logging.Log(logging.Fields{
		Component: "cart",
		UserID:    userID,
		ProductID: productID,
		Status:    "item_added",
	})
	return uc.repository.Get(ctx, id, userID)
}

func (uc *UseCase) ListItems(ctx context.Context, userID string) ([]Item, error) {
	return uc.repository.ListItems(ctx, userID)
}

// UpdateItem replaces the quantity on an owned cart line, re-running the
// live-stock pre-check against the new quantity.
func (uc *UseCase) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	item, err := uc.repository.Get(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	product, err := uc.products.Get(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < quantity {
		return nil, domain.NewInsufficientStock(product.Name, quantity, product.StockQuantity)
	}

	if err := uc.repository.UpdateQuantity(ctx, itemID, userID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (uc *UseCase) RemoveItem(ctx context.Context, userID, itemID string) error {
	return uc.repository.Delete(ctx, itemID, userID)
}

func (uc *UseCase) Clear(ctx context.Context, userID string) error {
	return uc.repository.Clear(ctx, userID)
}
