package users

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/httpapi"
)

// UseCaseInterface is what the handlers need from the users use case.
type UseCaseInterface interface {
	Create(ctx context.Context, input CreateUserInput) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id string) error
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
}

type Handler struct {
	useCase UseCaseInterface
}

func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.useCase.Create(c.Request.Context(), CreateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Get(c *gin.Context) {
	user, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) List(c *gin.Context) {
	found, err := h.useCase.List(c.Request.Context())
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != nil && *req.Role != RoleUser && *req.Role != RoleAdmin {
		httpapi.WriteError(c, &domain.ValidationError{Field: "role", Reason: "unknown role " + *req.Role})
		return
	}

	user, err := h.useCase.Update(c.Request.Context(), c.Param("id"), UpdateUserInput(req))
	if err != nil {
		httpapi.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "deleted"})
}
