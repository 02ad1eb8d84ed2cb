package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordercash/backend/internal/application/finance"
)

// ReceivableHandler handles receivable endpoints
type ReceivableHandler struct {
	*BaseHandler
	receivableService *finance.ReceivableService
}

// NewReceivableHandler creates a new receivable handler
func NewReceivableHandler(receivableService *finance.ReceivableService, logger *zap.Logger) *ReceivableHandler {
	return &ReceivableHandler{
		BaseHandler:       NewBaseHandler(logger),
		receivableService: receivableService,
	}
}

// Create opens a receivable manually. Receivables for invoiced orders
// are normally opened automatically when the invoice is created.
// POST /api/v1/finance/receivables
func (h *ReceivableHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req finance.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.receivableService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns receivables matching the filter
// GET /api/v1/finance/receivables
func (h *ReceivableHandler) List(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var filter finance.ReceivableListFilter
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

	receivables, total, err := h.receivableService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receivables, total, filter.Page, filter.PageSize)
}

// GetByID returns a single receivable
// GET /api/v1/finance/receivables/:id
func (h *ReceivableHandler) GetByID(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivableID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.receivableService.GetByID(c.Request.Context(), tenantID, receivableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordPayment applies an incoming payment to a receivable
// POST /api/v1/finance/receivables/:id/payments
func (h *ReceivableHandler) RecordPayment(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivableID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req finance.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.receivableService.RecordPayment(c.Request.Context(), tenantID, receivableID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus applies a direct status override to a receivable
// PUT /api/v1/finance/receivables/:id/status
func (h *ReceivableHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivableID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req finance.UpdateReceivableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.receivableService.UpdateStatus(c.Request.Context(), tenantID, receivableID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a receivable
// DELETE /api/v1/finance/receivables/:id
func (h *ReceivableHandler) Delete(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivableID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.receivableService.Delete(c.Request.Context(), tenantID, receivableID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
