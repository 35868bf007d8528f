package api

import (
	"errors"
	"net/http"
	"strconv"

	"urbanfix/internal/model"
	"urbanfix/internal/repository"
	"urbanfix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminHandler exposes the admin console endpoints (KPIs, support inbox,
// roadmap, master price lists).
type AdminHandler struct {
	admin  *service.AdminService
	logger *logrus.Logger
}

// NewAdminHandler creates an AdminHandler over a *gorm.DB.
func NewAdminHandler(db *gorm.DB, logger *logrus.Logger) *AdminHandler {
	return NewAdminHandlerWithDeps(service.NewAdminService(db, logger), logger)
}

// NewAdminHandlerWithDeps creates an AdminHandler with an injected service.
func NewAdminHandlerWithDeps(svc *service.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{admin: svc, logger: logger}
}

// GetOverview KPI snapshot. GET /api/admin/overview
func (h *AdminHandler) GetOverview(c *gin.Context) {
	overview, err := h.admin.GetOverview(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("GetOverview failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ListSupport support inbox. GET /api/admin/support?status=open&page=1&page_size=20
func (h *AdminHandler) ListSupport(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	inbox, err := h.admin.ListSupportTickets(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		h.respondError(c, err, "ListSupport")
		return
	}
	c.JSON(http.StatusOK, inbox)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateSupportStatus POST /api/admin/support/:id/status
func (h *AdminHandler) UpdateSupportStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.admin.UpdateSupportTicketStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondError(c, err, "UpdateSupportStatus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListRoadmap GET /api/admin/roadmap
func (h *AdminHandler) ListRoadmap(c *gin.Context) {
	items, err := h.admin.ListRoadmap(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListRoadmap failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateRoadmapStatus POST /api/admin/roadmap/:id/status
func (h *AdminHandler) UpdateRoadmapStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap item id"})
		return
	}
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.admin.UpdateRoadmapStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondError(c, err, "UpdateRoadmapStatus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListPrices GET /api/admin/prices?specialty=plumber
func (h *AdminHandler) ListPrices(c *gin.Context) {
	items, err := h.admin.ListPrices(c.Request.Context(), c.Query("specialty"))
	if err != nil {
		h.logger.WithError(err).Error("ListPrices failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type priceUpsertRequest struct {
	Specialty         string      `json:"specialty"`
	Concept           string      `json:"concept"`
	SuggestedPriceARS interface{} `json:"suggested_price_ars"`
	Unit              string      `json:"unit"`
}

// UpsertPrice PUT /api/admin/prices — insert or overwrite a price entry.
func (h *AdminHandler) UpsertPrice(c *gin.Context) {
	var req priceUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	price, err := service.ParsePriceARS(req.SuggestedPriceARS)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := &model.PriceListItem{
		Specialty:         req.Specialty,
		Concept:           req.Concept,
		SuggestedPriceARS: price,
		Unit:              req.Unit,
	}
	if err := h.admin.UpsertPrice(c.Request.Context(), item); err != nil {
		h.respondError(c, err, "UpsertPrice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

// respondError maps common admin-path errors onto HTTP statuses.
func (h *AdminHandler) respondError(c *gin.Context, err error, op string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.WithError(err).Error(op + " failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
