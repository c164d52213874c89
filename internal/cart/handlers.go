package cart

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelab/storefront/internal/httpapi"
)

// UseCaseInterface is what the handlers need from the cart use case.
type UseCaseInterface interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*Item, error)
	ListItems(ctx context.Context, userID string) ([]Item, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type Handler struct {
	useCase UseCaseInterface
}

func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.useCase.AddItem(c.Request.Context(), httpapi.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.useCase.ListItems(c.Request.Context(), httpapi.UserID(c))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.useCase.UpdateItem(c.Request.Context(), httpapi.UserID(c), c.Param("id"), req.Quantity)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	if err := h.useCase.RemoveItem(c.Request.Context(), httpapi.UserID(c), c.Param("id")); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "removed"})
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.useCase.Clear(c.Request.Context(), httpapi.UserID(c)); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "cleared"})
}
