// Package httpapi carries the HTTP-boundary concerns shared by every
// handler: translating domain errors to status codes and extracting the
// caller identity the fronting gateway injects.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelab/storefront/internal/domain"
)

// WriteError maps a domain error onto the response. Anything outside the
// closed error set is an internal failure; its details stay in the logs.
func WriteError(c *gin.Context, err error) {
	var (
		notFound     *domain.NotFoundError
		conflict     *domain.ConflictError
		emptyCart    *domain.EmptyCartError
		noStock      *domain.InsufficientStockError
		invalidInput *domain.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &emptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": emptyCart.Error()})
	case errors.As(err, &noStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        noStock.Error(),
			"product_name": noStock.ProductName,
			"requested":    noStock.Requested,
			"available":    noStock.Available,
		})
	case errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidInput.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
