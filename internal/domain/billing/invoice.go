package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// IsValid checks if the invoice status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if transitioning to the target status is allowed.
// Payment is one-way; a paid invoice never goes back to unpaid.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusUnpaid:
		return target == InvoiceStatusPaid
	default:
		return false
	}
}

// Invoice is the billing document auto-created when a delivery completes.
// Customer and product fields are copied from the originating sales order at
// creation time; the sales order number carries a tenant-scoped unique index
// so a second creation attempt for the same order surfaces as a duplicate.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber    string          `gorm:"size:50;not null;uniqueIndex:idx_invoices_tenant_number,composite:tenant_id" json:"invoice_number"`
	SalesOrderID     uuid.UUID       `gorm:"type:uuid;not null" json:"sales_order_id"`
	SalesOrderNumber string          `gorm:"size:50;not null;uniqueIndex:idx_invoices_tenant_order,composite:tenant_id" json:"sales_order_number"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName     string          `gorm:"size:200;not null" json:"customer_name"`
	ProductID        *uuid.UUID      `gorm:"type:uuid" json:"product_id,omitempty"`
	ProductName      string          `gorm:"size:200" json:"product_name"`
	Quantity         decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"quantity"`
	Unit             string          `gorm:"size:20" json:"unit"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	InvoiceDate      time.Time       `gorm:"not null" json:"invoice_date"`
	Status           InvoiceStatus   `gorm:"size:20;not null;default:'unpaid'" json:"status"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceSource carries the sales order fields an invoice is copied from
type InvoiceSource struct {
	SalesOrderID     uuid.UUID
	SalesOrderNumber string
	CustomerID       uuid.UUID
	CustomerName     string
	ProductID        *uuid.UUID
	ProductName      string
	Quantity         decimal.Decimal
	Unit             string
	UnitPrice        decimal.Decimal
	TotalAmount      decimal.Decimal
}

// NewInvoice creates an unpaid invoice from a sales order snapshot
func NewInvoice(tenantID uuid.UUID, invoiceNumber string, source InvoiceSource) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "invoice number cannot be empty")
	}
	if source.SalesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "sales order ID is required")
	}
	if source.SalesOrderNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "sales order number is required")
	}
	if source.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "customer ID is required")
	}

	invoice := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		SalesOrderID:        source.SalesOrderID,
		SalesOrderNumber:    source.SalesOrderNumber,
		CustomerID:          source.CustomerID,
		CustomerName:        source.CustomerName,
		ProductID:           source.ProductID,
		ProductName:         source.ProductName,
		Quantity:            source.Quantity,
		Unit:                source.Unit,
		UnitPrice:           source.UnitPrice,
		TotalAmount:         source.TotalAmount,
		InvoiceDate:         time.Now(),
		Status:              InvoiceStatusUnpaid,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))
	return invoice, nil
}

// GenerateInvoiceNumber generates an invoice number from a timestamp
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d", now.UnixMilli())
}

// SetStatus sets the invoice status, tracking the paid timestamp
func (i *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "invalid invoice status: "+status.String())
	}
	if i.Status == status {
		return nil
	}
	if !i.Status.CanTransitionTo(status) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot transition invoice from "+i.Status.String()+" to "+status.String())
	}

	i.Status = status
	i.UpdatedAt = time.Now()
	if status == InvoiceStatusPaid {
		now := time.Now()
		i.PaidAt = &now
		i.AddDomainEvent(NewInvoicePaidEvent(i))
	}
	return nil
}

// MarkPaid marks the invoice as paid
func (i *Invoice) MarkPaid() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "invoice is already paid")
	}
	return i.SetStatus(InvoiceStatusPaid)
}

// IsPaid checks if the invoice has been paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
