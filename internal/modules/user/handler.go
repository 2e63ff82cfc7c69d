package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/pkg/response"
	"minemarket/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	u := protected.Group("/users")
	{
		u.GET("", h.List)
		u.GET("/:id", h.Get)
		u.PATCH("/:id", h.Update)
		u.DELETE("/:id", h.Delete)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	f := repository.UserFilters{Role: c.Query("role")}
	if v := c.Query("is_verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid is_verified")
			return
		}
		f.IsVerified = &b
	}

	users, err := h.service.List(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.service.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid user payload")
	case errors.Is(err, ErrForbidden):
		response.Fail(c, http.StatusForbidden, "Admin access required")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "User operation failed")
	}
}
