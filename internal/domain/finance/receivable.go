package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the settlement state of a receivable
type ReceivableStatus string

const (
	ReceivableStatusUnpaid  ReceivableStatus = "unpaid"
	ReceivableStatusPartial ReceivableStatus = "partial"
	ReceivableStatusPaid    ReceivableStatus = "paid"
)

// IsValid checks if the receivable status is valid
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusUnpaid, ReceivableStatusPartial, ReceivableStatusPaid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s ReceivableStatus) String() string {
	return string(s)
}

// Receivable tracks the open balance collected against a sales order.
// Status is derived from the received/due comparison on every payment;
// SetStatus remains available as an explicit operator override.
type Receivable struct {
	shared.TenantAggregateRoot
	ReceivableNumber string           `gorm:"size:50;not null;uniqueIndex:idx_receivables_tenant_number,composite:tenant_id" json:"receivable_number"`
	SalesOrderID     uuid.UUID        `gorm:"type:uuid;not null" json:"sales_order_id"`
	SalesOrderNumber string           `gorm:"size:50;not null;index" json:"sales_order_number"`
	InvoiceID        *uuid.UUID       `gorm:"type:uuid" json:"invoice_id,omitempty"`
	CustomerID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName     string           `gorm:"size:200;not null" json:"customer_name"`
	AmountDue        decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount_due"`
	AmountReceived   decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"amount_received"`
	Status           ReceivableStatus `gorm:"size:20;not null;default:'unpaid'" json:"status"`
	SettledAt        *time.Time       `json:"settled_at,omitempty"`
}

// TableName returns the table name for GORM
func (Receivable) TableName() string {
	return "receivables"
}

// NewReceivable opens an unpaid receivable for a sales order
func NewReceivable(tenantID uuid.UUID, receivableNumber string, salesOrderID uuid.UUID, salesOrderNumber string, invoiceID *uuid.UUID, customerID uuid.UUID, customerName string, amountDue decimal.Decimal) (*Receivable, error) {
	if receivableNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIVABLE_NUMBER", "receivable number cannot be empty")
	}
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "sales order ID is required")
	}
	if salesOrderNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "sales order number is required")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "customer ID is required")
	}
	if amountDue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "amount due cannot be negative")
	}

	receivable := &Receivable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReceivableNumber:    receivableNumber,
		SalesOrderID:        salesOrderID,
		SalesOrderNumber:    salesOrderNumber,
		InvoiceID:           invoiceID,
		CustomerID:          customerID,
		CustomerName:        customerName,
		AmountDue:           amountDue,
		AmountReceived:      decimal.Zero,
		Status:              ReceivableStatusUnpaid,
	}

	receivable.AddDomainEvent(NewReceivableCreatedEvent(receivable))
	return receivable, nil
}

// GenerateReceivableNumber generates a receivable number from a timestamp
func GenerateReceivableNumber(now time.Time) string {
	return fmt.Sprintf("RCV-%d", now.UnixMilli())
}

// RecordPayment adds a payment to the running received total and derives the
// status. Overpayment is accepted without a cap; the excess stays visible in
// the received amount.
func (r *Receivable) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "payment amount must be positive")
	}

	r.AmountReceived = r.AmountReceived.Add(amount)
	r.applyDerivedStatus()
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewReceivablePaymentRecordedEvent(r, amount))
	return nil
}

func (r *Receivable) applyDerivedStatus() {
	switch {
	case r.AmountReceived.GreaterThanOrEqual(r.AmountDue):
		r.Status = ReceivableStatusPaid
		now := time.Now()
		r.SettledAt = &now
	case r.AmountReceived.IsPositive():
		r.Status = ReceivableStatusPartial
		r.SettledAt = nil
	default:
		r.Status = ReceivableStatusUnpaid
		r.SettledAt = nil
	}
}

// SetStatus overrides the status independently of the received amount
func (r *Receivable) SetStatus(status ReceivableStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "invalid receivable status: "+status.String())
	}
	if r.Status == status {
		return nil
	}

	r.Status = status
	r.UpdatedAt = time.Now()
	if status == ReceivableStatusPaid {
		now := time.Now()
		r.SettledAt = &now
	} else {
		r.SettledAt = nil
	}
	return nil
}

// Outstanding returns the remaining balance, never below zero
func (r *Receivable) Outstanding() decimal.Decimal {
	outstanding := r.AmountDue.Sub(r.AmountReceived)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// IsSettled checks if the receivable has been fully collected
func (r *Receivable) IsSettled() bool {
	return r.Status == ReceivableStatusPaid
}
