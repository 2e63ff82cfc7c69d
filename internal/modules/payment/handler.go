package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	p := protected.Group("/payments")
	{
		p.POST("/intent", h.CreateIntent)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"intent": intent})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid payment payload")
	case errors.Is(err, ErrProvider):
		response.Error(c, http.StatusBadGateway, "Payment provider rejected the request")
	default:
		response.Error(c, http.StatusInternalServerError, "Payment operation failed")
	}
}
