package handler

import (
	"github.com/gin-gonic/gin"
	scanapp "github.com/prodtrack/backend/internal/application/scan"
)

// ScanHandler handles shop-floor scan submissions and scan history
type ScanHandler struct {
	BaseHandler
	scanService *scanapp.ScanService
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanService *scanapp.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// RegisterRoutes registers scan routes
func (h *ScanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scans := rg.Group("/scans")
	{
		scans.POST("", h.RecordScan)
		scans.GET("", h.List)
		scans.GET("/:id", h.GetByID)
	}
}

// RecordScan persists a scan event; RECEIVE/ISSUE/RETURN scans against a
// known warehouse stock row also move stock in the same transaction
func (h *ScanHandler) RecordScan(c *gin.Context) {
	var req scanapp.RecordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Scan requires an authenticated user")
		return
	}
	req.UserID = userID

	resp, err := h.scanService.RecordScan(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one scan log entry
func (h *ScanHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid scan log ID")
		return
	}

	log, err := h.scanService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, log)
}

// List returns scan logs with optional product/action/section filters
func (h *ScanHandler) List(c *gin.Context) {
	var filter scanapp.ScanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	logs, total, err := h.scanService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, logs, total, page, pageSize)
}
