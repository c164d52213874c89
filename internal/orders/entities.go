package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storelab/storefront/internal/catalog"
	"github.com/storelab/storefront/internal/domain"
)

// Status enumerates the order lifecycle. Delivered and cancelled are
// terminal; transitions are not validated here (any status may follow any
// status, an accepted simplification of the admin path).
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a wire value against the enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", &domain.ValidationError{Field: "status", Reason: "unknown status " + s}
}

// Order is the durable result of a checkout. TotalAmount is fixed at
// creation time and never recomputed.
type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          Status          `json:"status" db:"status"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// NewOrder creates the pending order shell the checkout engine fills in.
func NewOrder(userID, shippingAddress string) *Order {
	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		TotalAmount:     decimal.Zero,
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		Items:           []Item{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Item is an order line. ProductName and Price are snapshots taken at
// order time; later changes to the product do not touch them.
type Item struct {
	ID          string          `json:"id" db:"id"`
	OrderID     string          `json:"order_id" db:"order_id"`
	ProductID   string          `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// NewItem snapshots the live product into an order line.
func NewItem(orderID string, product *catalog.Product, quantity int) Item {
	return Item{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
