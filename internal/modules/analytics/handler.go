package analytics

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
	a := protected.Group("/analytics")
	{
		a.GET("/me", h.Personal)
		a.GET("/admin", h.Platform)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Personal(c *gin.Context) {
	stats, err := h.service.Personal(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) Platform(c *gin.Context) {
	stats, err := h.service.Platform(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Fail(c, http.StatusForbidden, "Admin access required")
	default:
		response.Error(c, http.StatusInternalServerError, "Analytics query failed")
	}
}
