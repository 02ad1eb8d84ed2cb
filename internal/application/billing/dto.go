package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ==================== Invoice DTOs ====================

// UpdateInvoiceStatusRequest represents a request to change an invoice's status
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unpaid paid"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Status   *billing.InvoiceStatus `form:"status"`
	Search   string                 `form:"search"`
	Page     int                    `form:"page"`
	PageSize int                    `form:"page_size"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	SalesOrderID     uuid.UUID       `json:"sales_order_id"`
	SalesOrderNumber string          `json:"sales_order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	ProductID        *uuid.UUID      `json:"product_id,omitempty"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	InvoiceDate      time.Time       `json:"invoice_date"`
	Status           string          `json:"status"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(i *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               i.ID,
		TenantID:         i.TenantID,
		InvoiceNumber:    i.InvoiceNumber,
		SalesOrderID:     i.SalesOrderID,
		SalesOrderNumber: i.SalesOrderNumber,
		CustomerID:       i.CustomerID,
		CustomerName:     i.CustomerName,
		ProductID:        i.ProductID,
		ProductName:      i.ProductName,
		Quantity:         i.Quantity,
		Unit:             i.Unit,
		UnitPrice:        i.UnitPrice,
		TotalAmount:      i.TotalAmount,
		InvoiceDate:      i.InvoiceDate,
		Status:           i.Status.String(),
		PaidAt:           i.PaidAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
