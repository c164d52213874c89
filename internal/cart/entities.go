package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/storelab/storefront/internal/catalog"
)

// Item is one cart line. A user has at most one Item per product; adding
// the same product again increments the quantity instead.
type Item struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	ProductID string           `json:"product_id" db:"product_id"`
	Quantity  int              `json:"quantity" db:"quantity"`
	Product   *catalog.Product `json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

func NewItem(userID, productID string, quantity int) *Item {
	now := time.Now()
	return &Item{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
