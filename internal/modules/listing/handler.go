package listing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
	"minemarket/internal/pkg/response"
	"minemarket/internal/pkg/validator"
	"minemarket/internal/repository"
)

type Handler struct {
	mines    *MineService
	minerals *MineralService
}

func NewHandler(mines *MineService, minerals *MineralService) *Handler {
	return &Handler{mines: mines, minerals: minerals}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	pm := public.Group("/mines")
	{
		pm.GET("", h.ListMines)
		pm.GET("/:id", h.GetMine)
	}
	m := protected.Group("/mines")
	{
		m.POST("", h.CreateMine)
		m.GET("/my", h.ListMyMines)
		m.PATCH("/:id", h.UpdateMine)
		m.DELETE("/:id", h.DeleteMine)
		m.POST("/:id/attachments", h.AttachToMine)
	}

	pn := public.Group("/minerals")
	{
		pn.GET("", h.ListMinerals)
		pn.GET("/:id", h.GetMineral)
	}
	n := protected.Group("/minerals")
	{
		n.POST("", h.CreateMineral)
		n.PATCH("/:id", h.UpdateMineral)
		n.DELETE("/:id", h.DeleteMineral)
		n.POST("/:id/attachments", h.AttachToMineral)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func listingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid listing id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateMine(c *gin.Context) {
	var req CreateMineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}

	mine, err := h.mines.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"mine": mine})
}

func (h *Handler) GetMine(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	mine, err := h.mines.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mine": mine})
}

func (h *Handler) ListMines(c *gin.Context) {
	f := repository.MineFilters{
		Status:        c.Query("status"),
		CommodityType: c.Query("commodity_type"),
		Query:         c.Query("q"),
	}
	if owner := c.Query("owner_id"); owner != "" {
		id, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid owner_id")
			return
		}
		f.OwnerID = id
	}

	mines, err := h.mines.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mines": mines, "count": len(mines)})
}

func (h *Handler) ListMyMines(c *gin.Context) {
	mines, err := h.mines.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mines": mines, "count": len(mines)})
}

func (h *Handler) UpdateMine(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req UpdateMineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	mine, err := h.mines.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mine": mine})
}

func (h *Handler) DeleteMine(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.mines.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) AttachToMine(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	mine, err := h.mines.Attach(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"mine": mine})
}

func (h *Handler) CreateMineral(c *gin.Context) {
	var req CreateMineralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	mineral, err := h.minerals.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"mineral": mineral})
}

func (h *Handler) GetMineral(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	mineral, err := h.minerals.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mineral": mineral})
}

func (h *Handler) ListMinerals(c *gin.Context) {
	f := repository.MineralFilters{
		MineralType: c.Query("mineral_type"),
		Query:       c.Query("q"),
	}
	if creator := c.Query("created_by"); creator != "" {
		id, err := strconv.ParseInt(creator, 10, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid created_by")
			return
		}
		f.CreatedBy = id
	}

	minerals, err := h.minerals.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"minerals": minerals, "count": len(minerals)})
}

func (h *Handler) UpdateMineral(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req UpdateMineralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	mineral, err := h.minerals.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mineral": mineral})
}

func (h *Handler) DeleteMineral(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.minerals.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) AttachToMineral(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	mineral, err := h.minerals.Attach(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"mineral": mineral})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Invalid listing payload")
	case errors.Is(err, ErrForbidden):
		response.Fail(c, http.StatusForbidden, "You do not own this listing")
	case errors.Is(err, ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Listing not found")
	default:
		response.Error(c, http.StatusInternalServerError, "Listing operation failed")
	}
}
