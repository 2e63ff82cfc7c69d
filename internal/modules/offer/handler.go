package offer

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the offer routes; the group is expected to carry the
// auth middleware already.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/offers")
	{
		offers.POST("", h.Submit)
		offers.GET("/my", h.ListMy)
		offers.GET("/mine/:mineId", h.ListForMine)
		offers.PATCH("/:id/accept", h.Accept)
		offers.PATCH("/:id/reject", h.Reject)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.service.Submit(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"offer": o})
}

func (h *Handler) Accept(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	o, err := h.service.Accept(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": o})
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	o, err := h.service.Reject(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": o})
}

func (h *Handler) ListForMine(c *gin.Context) {
	mineID, err := strconv.ParseInt(c.Param("mineId"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid mine ID")
		return
	}

	offers, err := h.service.ListForMine(c.Request.Context(), actorFrom(c), mineID, c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": len(offers), "offers": offers})
}

func (h *Handler) ListMy(c *gin.Context) {
	offers, err := h.service.ListMy(c.Request.Context(), c.GetInt64("user_id"), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": len(offers), "offers": offers})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid offer: amount must be positive and mine/investor must exist")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Offer not found")
	case errors.Is(err, ErrForbidden):
		response.Fail(c, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, ErrConflict):
		response.Fail(c, http.StatusConflict, "Offer has already been resolved")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process offer")
	}
}
