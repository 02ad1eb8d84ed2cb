package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordercash/backend/internal/application/trade"
)

// SalesOrderHandler handles sales order endpoints
type SalesOrderHandler struct {
	*BaseHandler
	orderService *trade.SalesOrderService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(orderService *trade.SalesOrderService, logger *zap.Logger) *SalesOrderHandler {
	return &SalesOrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		orderService: orderService,
	}
}

// Create creates a sales order together with its pending delivery
// POST /api/v1/trade/sales-orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req trade.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns sales orders matching the filter
// GET /api/v1/trade/sales-orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var filter trade.SalesOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID returns a single sales order
// GET /api/v1/trade/sales-orders/:id
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orderID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByOrderNumber returns a sales order by its business number
// GET /api/v1/trade/sales-orders/by-number/:number
func (h *SalesOrderHandler) GetByOrderNumber(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "order number is required")
		return
	}

	resp, err := h.orderService.GetByOrderNumber(c.Request.Context(), tenantID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus applies a manual status change to a sales order
// PUT /api/v1/trade/sales-orders/:id/status
func (h *SalesOrderHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orderID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req trade.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.UpdateStatus(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a sales order
// DELETE /api/v1/trade/sales-orders/:id
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orderID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), tenantID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetStatusSummary returns order counts grouped by status
// GET /api/v1/trade/sales-orders/status-summary
func (h *SalesOrderHandler) GetStatusSummary(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.orderService.GetStatusSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
