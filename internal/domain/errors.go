// Package domain defines the closed set of error kinds shared by the
// storefront services. Callers branch on these with errors.As instead of
// matching message strings.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError reports that a referenced entity does not exist or is not
// visible to the caller.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ConflictError reports a uniqueness violation, e.g. a duplicate email.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// EmptyCartError reports a checkout attempt against a cart with no items.
type EmptyCartError struct {
	UserID string
}

func (e *EmptyCartError) Error() string {
	return "cannot create order with empty cart"
}

// InsufficientStockError reports a failed stock reservation. It carries the
// product's display name so the message is usable as-is by clients.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// ValidationError reports a rejected input value on a write path.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewInsufficientStock is a convenience constructor used by the checkout
// engine and the cart pre-checks.
func NewInsufficientStock(productName string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductName: productName,
		Requested:   requested,
		Available:   available,
	}
}

// Money formats a decimal amount with the two fraction digits used across
// the API surface.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
