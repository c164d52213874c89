package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/httpapi"
)

// UseCaseInterface is what the handlers need from the catalog use case.
type UseCaseInterface interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, int, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type createProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	Category      string          `json:"category" binding:"required"`
	ImageURL      string          `json:"image_url"`
}

type updateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	Category      *string          `json:"category"`
	ImageURL      *string          `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
}

type listProductsQuery struct {
	Name     string   `form:"name"`
	Category string   `form:"category"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,min=0"`
	Page     int      `form:"page" binding:"min=0"`
	Limit    int      `form:"limit" binding:"min=0"`
}

type Handler struct {
	useCase UseCaseInterface
}

func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		httpapi.WriteError(c, &domain.ValidationError{Field: "price", Reason: "must not be negative"})
		return
	}

	product, err := h.useCase.Create(c.Request.Context(), CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) Get(c *gin.Context) {
	product, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) List(c *gin.Context) {
	var query listProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := ListFilter{
		Name:     query.Name,
		Category: query.Category,
		Page:     query.Page,
		Limit:    query.Limit,
	}
	if query.MinPrice != nil {
		min := decimal.NewFromFloat(*query.MinPrice)
		filter.MinPrice = &min
	}
	if query.MaxPrice != nil {
		max := decimal.NewFromFloat(*query.MaxPrice)
		filter.MaxPrice = &max
	}

	products, total, err := h.useCase.List(c.Request.Context(), filter)
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": products, "total": total})
}

func (h *Handler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		httpapi.WriteError(c, &domain.ValidationError{Field: "price", Reason: "must not be negative"})
		return
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		httpapi.WriteError(c, &domain.ValidationError{Field: "stock_quantity", Reason: "must not be negative"})
		return
	}

	product, err := h.useCase.Update(c.Request.Context(), c.Param("id"), UpdateProductInput(req))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "deleted"})
}
