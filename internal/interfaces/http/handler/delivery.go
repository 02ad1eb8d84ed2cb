package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordercash/backend/internal/application/fulfillment"
)

// DeliveryHandler handles delivery endpoints
type DeliveryHandler struct {
	*BaseHandler
	deliveryService *fulfillment.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService *fulfillment.DeliveryService, logger *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		BaseHandler:     NewBaseHandler(logger),
		deliveryService: deliveryService,
	}
}

// List returns deliveries matching the filter
// GET /api/v1/fulfillment/deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var filter fulfillment.DeliveryListFilter
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

	deliveries, total, err := h.deliveryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, deliveries, total, filter.Page, filter.PageSize)
}

// GetByID returns a single delivery
// GET /api/v1/fulfillment/deliveries/:id
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deliveryID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.deliveryService.GetByID(c.Request.Context(), tenantID, deliveryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetBySalesOrderID returns the delivery paired with a sales order
// GET /api/v1/fulfillment/deliveries/by-order/:orderId
func (h *DeliveryHandler) GetBySalesOrderID(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orderID, ok := h.bindUUIDParam(c, "orderId")
	if !ok {
		return
	}

	resp, err := h.deliveryService.GetBySalesOrderID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Advance moves a delivery to its next status. Completing a delivery
// triggers invoice creation through the event bus.
// PUT /api/v1/fulfillment/deliveries/:id/status
func (h *DeliveryHandler) Advance(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deliveryID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fulfillment.AdvanceDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.deliveryService.Advance(c.Request.Context(), tenantID, deliveryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
