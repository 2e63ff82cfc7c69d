package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"minemarket/internal/pkg/response"
	"minemarket/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	a := public.Group("/auth")
	{
		a.POST("/register", h.Register)
		a.POST("/login", h.Login)
	}
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": res.User, "token": res.Token})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": res.User, "token": res.Token})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid registration payload")
	case errors.Is(err, ErrEmailTaken):
		response.Fail(c, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "Authentication failed")
	}
}
