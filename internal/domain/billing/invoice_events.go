package billing

import (
	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeInvoice = "Invoice"

	EventTypeInvoiceCreated = "InvoiceCreated"
	EventTypeInvoicePaid    = "InvoicePaid"
)

// InvoiceCreatedEvent is raised when an invoice is generated. Finance
// subscribes to it to open the matching receivable.
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	SalesOrderID     uuid.UUID       `json:"sales_order_id"`
	SalesOrderNumber string          `json:"sales_order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// NewInvoiceCreatedEvent creates a new invoice created event
func NewInvoiceCreatedEvent(i *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceID:        i.ID,
		InvoiceNumber:    i.InvoiceNumber,
		SalesOrderID:     i.SalesOrderID,
		SalesOrderNumber: i.SalesOrderNumber,
		CustomerID:       i.CustomerID,
		CustomerName:     i.CustomerName,
		TotalAmount:      i.TotalAmount,
	}
}

// EventType returns the event type
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoicePaidEvent is raised when an invoice is marked paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	SalesOrderNumber string          `json:"sales_order_number"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new invoice paid event
func NewInvoicePaidEvent(i *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, i.ID, i.TenantID),
		InvoiceID:        i.ID,
		InvoiceNumber:    i.InvoiceNumber,
		SalesOrderNumber: i.SalesOrderNumber,
		TotalAmount:      i.TotalAmount,
	}
}

// EventType returns the event type
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}
