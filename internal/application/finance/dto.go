package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ==================== Receivable DTOs ====================

// CreateReceivableRequest represents a request to open a receivable manually
type CreateReceivableRequest struct {
	SalesOrderID     uuid.UUID       `json:"sales_order_id" binding:"required"`
	SalesOrderNumber string          `json:"sales_order_number" binding:"required,max=50"`
	InvoiceID        *uuid.UUID      `json:"invoice_id"`
	CustomerID       uuid.UUID       `json:"customer_id" binding:"required"`
	CustomerName     string          `json:"customer_name" binding:"required,min=1,max=200"`
	AmountDue        decimal.Decimal `json:"amount_due" binding:"required"`
}

// RecordPaymentRequest represents a request to record an incoming payment
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateReceivableStatusRequest represents a direct status override
type UpdateReceivableStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unpaid partial paid"`
}

// ReceivableListFilter represents filter options for the receivable list
type ReceivableListFilter struct {
	Status   *finance.ReceivableStatus `form:"status"`
	Search   string                    `form:"search"`
	Page     int                       `form:"page"`
	PageSize int                       `form:"page_size"`
}

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	ReceivableNumber string          `json:"receivable_number"`
	SalesOrderID     uuid.UUID       `json:"sales_order_id"`
	SalesOrderNumber string          `json:"sales_order_number"`
	InvoiceID        *uuid.UUID      `json:"invoice_id,omitempty"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	AmountDue        decimal.Decimal `json:"amount_due"`
	AmountReceived   decimal.Decimal `json:"amount_received"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Status           string          `json:"status"`
	SettledAt        *time.Time      `json:"settled_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToReceivableResponse converts a domain receivable to a response DTO
func ToReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:               r.ID,
		TenantID:         r.TenantID,
		ReceivableNumber: r.ReceivableNumber,
		SalesOrderID:     r.SalesOrderID,
		SalesOrderNumber: r.SalesOrderNumber,
		InvoiceID:        r.InvoiceID,
		CustomerID:       r.CustomerID,
		CustomerName:     r.CustomerName,
		AmountDue:        r.AmountDue,
		AmountReceived:   r.AmountReceived,
		Outstanding:      r.Outstanding(),
		Status:           r.Status.String(),
		SettledAt:        r.SettledAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ToReceivableResponses converts a slice of domain receivables
func ToReceivableResponses(receivables []finance.Receivable) []ReceivableResponse {
	responses := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		responses[i] = ToReceivableResponse(&receivables[i])
	}
	return responses
}
