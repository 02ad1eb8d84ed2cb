package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordercash/backend/internal/application/billing"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	*BaseHandler
	invoiceService *billing.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *billing.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler:    NewBaseHandler(logger),
		invoiceService: invoiceService,
	}
}

// List returns invoices matching the filter
// GET /api/v1/billing/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var filter billing.InvoiceListFilter
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

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// GetByID returns a single invoice
// GET /api/v1/billing/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoiceID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetBySalesOrderNumber returns the invoice created for a sales order
// GET /api/v1/billing/invoices/by-order/:number
func (h *InvoiceHandler) GetBySalesOrderNumber(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "sales order number is required")
		return
	}

	resp, err := h.invoiceService.GetBySalesOrderNumber(c.Request.Context(), tenantID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus applies a manual status change to an invoice
// PUT /api/v1/billing/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoiceID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billing.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.invoiceService.UpdateStatus(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkPaid marks an invoice as paid
// POST /api/v1/billing/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoiceID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.invoiceService.MarkPaid(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an invoice
// DELETE /api/v1/billing/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoiceID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
