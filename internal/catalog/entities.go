package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog record. StockQuantity is never negative; the only
// writers are the admin CRUD paths and the checkout stock reservation.
type Product struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	Category      string          `json:"category" db:"category"`
	ImageURL      string          `json:"image_url,omitempty" db:"image_url"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// NewProduct creates an active product with a fresh ID.
func NewProduct(name, description string, price decimal.Decimal, stockQuantity int, category, imageURL string) *Product {
	now := time.Now()
	return &Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		Category:      category,
		ImageURL:      imageURL,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	Limit    int
}
