package orders

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelab/storefront/internal/httpapi"
)

// UseCaseInterface is what the handlers need from the orders use case.
type UseCaseInterface interface {
	Get(ctx context.Context, id, userID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type Handler struct {
	useCase UseCaseInterface
}

func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Get(c *gin.Context) {
	order, err := h.useCase.Get(c.Request.Context(), c.Param("id"), httpapi.UserID(c))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) List(c *gin.Context) {
	found, err := h.useCase.ListByUser(c.Request.Context(), httpapi.UserID(c))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) ListAll(c *gin.Context) {
	found, err := h.useCase.ListAll(c.Request.Context())
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := ParseStatus(req.Status)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	order, err := h.useCase.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
