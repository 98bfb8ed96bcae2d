package handler

import (
	"github.com/gin-gonic/gin"
	productionapp "github.com/prodtrack/backend/internal/application/production"
)

// ProductionHandler handles production orders, processes and sections
type ProductionHandler struct {
	BaseHandler
	productionService *productionapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService *productionapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// RegisterRoutes registers production routes
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/production/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.GET("/by-order-no/:orderNo", h.GetOrderByOrderNo)
	}

	processes := rg.Group("/production/processes")
	{
		processes.PUT("/:id", h.UpdateProcess)
	}

	sections := rg.Group("/production/sections")
	{
		sections.POST("", h.CreateSection)
		sections.GET("", h.ListSections)
		sections.PUT("/:id", h.UpdateSection)
	}
}

// CreateOrder creates a production order with a daily-sequenced order number
// and a process snapshot of the active sections
func (h *ProductionHandler) CreateOrder(c *gin.Context) {
	var req productionapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.UserID = &userID
	}

	order, err := h.productionService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetOrder returns one production order with its processes
func (h *ProductionHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.productionService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetOrderByOrderNo looks an order up by its human-readable number
func (h *ProductionHandler) GetOrderByOrderNo(c *gin.Context) {
	orderNo := c.Param("orderNo")
	if orderNo == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.productionService.GetOrderByOrderNo(c.Request.Context(), orderNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListOrders returns production orders with optional status/product filters
func (h *ProductionHandler) ListOrders(c *gin.Context) {
	var filter productionapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.productionService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// UpdateOrder updates order details (quantity, due date, notes)
func (h *ProductionHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req productionapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.productionService.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateOrderStatus transitions an order through its lifecycle
func (h *ProductionHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req productionapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.productionService.UpdateOrderStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// DeleteOrder removes an order and its processes
func (h *ProductionHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.productionService.DeleteOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateProcess updates one process of an order. Out-of-order completion is
// allowed.
func (h *ProductionHandler) UpdateProcess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid process ID")
		return
	}

	var req productionapp.UpdateProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	process, err := h.productionService.UpdateProcess(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, process)
}

// CreateSection creates a production section
func (h *ProductionHandler) CreateSection(c *gin.Context) {
	var req productionapp.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	section, err := h.productionService.CreateSection(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, section)
}

// UpdateSection updates a section's name, sequence or active flag
func (h *ProductionHandler) UpdateSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid section ID")
		return
	}

	var req productionapp.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	section, err := h.productionService.UpdateSection(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, section)
}

// ListSections returns production sections; pass active=true for only the
// active ones in snapshot order
func (h *ProductionHandler) ListSections(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	sections, err := h.productionService.ListSections(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sections)
}
