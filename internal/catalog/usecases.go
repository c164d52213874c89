package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storelab/storefront/pkg/logging"
)

// CreateProductInput carries the validated fields for a new product.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	ImageURL      string
}

// UpdateProductInput carries a partial update; nil fields are left as-is.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	Category      *string
	ImageURL      *string
	IsActive      *bool
}

// UseCase contains the catalog business logic.
type UseCase struct {
	repository Repository
}

func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

func (uc *UseCase) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	product := NewProduct(input.Name, input.Description, input.Price,
		input.StockQuantity, input.Category, input.ImageURL)

	if err := uc.repository.Create(ctx, product); err != nil {
		return nil, err
	}

	logging.Log(logging.Fields{
		Component: "catalog",
		ProductID: product.ID,
		Status:    "created",
	})
	return product, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*Product, error) {
	return uc.repository.Get(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	return uc.repository.List(ctx, filter)
}

func (uc *UseCase) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	product, err := uc.repository.GetAny(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := uc.repository.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repository.Delete(ctx, id)
}
