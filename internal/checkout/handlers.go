package checkout

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelab/storefront/internal/httpapi"
	"github.com/storelab/storefront/internal/orders"
)

// UseCaseInterface is what the handler needs from the checkout engine.
type UseCaseInterface interface {
	Checkout(ctx context.Context, userID, shippingAddress string) (*orders.Order, error)
}

type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

type Handler struct {
	useCase UseCaseInterface
}

func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

// Create runs the checkout for the calling user.
func (h *Handler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.useCase.Checkout(c.Request.Context(), httpapi.UserID(c), req.ShippingAddress)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}
