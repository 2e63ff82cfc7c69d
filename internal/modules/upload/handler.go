package upload

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
	u := protected.Group("/uploads")
	{
		u.POST("", h.Upload)
		u.GET("/my", h.ListMine)
		u.GET("/:id", h.Get)
		u.DELETE("/:id", h.Delete)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "File is required (multipart field 'file')")
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), actorFrom(c), fileHeader)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"upload": rec})
}

func (h *Handler) Get(c *gin.Context) {
	rec, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upload": rec})
}

func (h *Handler) ListMine(c *gin.Context) {
	recs, err := h.service.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"uploads": recs, "count": len(recs)})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile):
		response.Fail(c, http.StatusBadRequest, "File is empty")
	case errors.Is(err, ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, "File exceeds the 10 MB limit")
	case errors.Is(err, ErrInvalidMimeType):
		response.Fail(c, http.StatusBadRequest, "Only PDF and image files are accepted")
	case errors.Is(err, ErrNotOwner):
		response.Fail(c, http.StatusForbidden, "You do not own this upload")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Upload not found")
	default:
		response.Error(c, http.StatusInternalServerError, "Upload failed")
	}
}
