package machine

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

// RegisterRoutes mounts read routes on the public group and mutations on the
// authenticated group.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	pub := public.Group("/heavy-machines")
	{
		pub.GET("", h.List)
		pub.GET("/:id", h.Get)
	}

	priv := protected.Group("/heavy-machines")
	{
		priv.POST("", h.Create)
		priv.PATCH("/:id", h.Update)
		priv.DELETE("/:id", h.Delete)
		priv.POST("/:id/rent", h.Rent)
		priv.POST("/:id/return/:rentalId", h.ReturnRental)
		priv.POST("/:id/sell", h.Sell)
		priv.POST("/:id/maintenance", h.LogMaintenance)
		priv.PATCH("/:id/status", h.SetStatus)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func machineID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"machine": m})
}

func (h *Handler) List(c *gin.Context) {
	machines, err := h.service.List(c.Request.Context(), ListFilters{
		Category:         c.Query("category"),
		Status:           c.Query("status"),
		Brand:            c.Query("brand"),
		Query:            c.Query("q"),
		AvailableForRent: c.Query("availableForRent") == "true",
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": len(machines), "machines": machines})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"machine": m})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	var req UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"machine": m})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Rent(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	var req RentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.Rent(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"machine": m})
}

func (h *Handler) ReturnRental(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	m, err := h.service.ReturnRental(c.Request.Context(), id, c.Param("rentalId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"machine": m})
}

func (h *Handler) Sell(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.Sell(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"machine": m})
}

func (h *Handler) LogMaintenance(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.LogMaintenance(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"machine": m})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := machineID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.SetStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"machine": m})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid machine payload")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Machine or rental record not found")
	case errors.Is(err, ErrForbidden):
		response.Fail(c, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, ErrInvalidState):
		response.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrAlreadySold):
		response.Fail(c, http.StatusConflict, "Machine already sold")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process machine request")
	}
}
