package finance

import (
	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeReceivable = "Receivable"

	EventTypeReceivableCreated         = "ReceivableCreated"
	EventTypeReceivablePaymentRecorded = "ReceivablePaymentRecorded"
)

// ReceivableCreatedEvent is raised when a receivable is opened
type ReceivableCreatedEvent struct {
	shared.BaseDomainEvent
	ReceivableID     uuid.UUID       `json:"receivable_id"`
	ReceivableNumber string          `json:"receivable_number"`
	SalesOrderNumber string          `json:"sales_order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	AmountDue        decimal.Decimal `json:"amount_due"`
}

// NewReceivableCreatedEvent creates a new receivable created event
func NewReceivableCreatedEvent(r *Receivable) *ReceivableCreatedEvent {
	return &ReceivableCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeReceivableCreated, AggregateTypeReceivable, r.ID, r.TenantID),
		ReceivableID:     r.ID,
		ReceivableNumber: r.ReceivableNumber,
		SalesOrderNumber: r.SalesOrderNumber,
		CustomerID:       r.CustomerID,
		AmountDue:        r.AmountDue,
	}
}

// EventType returns the event type
func (e *ReceivableCreatedEvent) EventType() string {
	return EventTypeReceivableCreated
}

// ReceivablePaymentRecordedEvent is raised when a payment is recorded
type ReceivablePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	ReceivableID   uuid.UUID        `json:"receivable_id"`
	PaymentAmount  decimal.Decimal  `json:"payment_amount"`
	AmountReceived decimal.Decimal  `json:"amount_received"`
	Status         ReceivableStatus `json:"status"`
}

// NewReceivablePaymentRecordedEvent creates a new payment recorded event
func NewReceivablePaymentRecordedEvent(r *Receivable, payment decimal.Decimal) *ReceivablePaymentRecordedEvent {
	return &ReceivablePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivablePaymentRecorded, AggregateTypeReceivable, r.ID, r.TenantID),
		ReceivableID:    r.ID,
		PaymentAmount:   payment,
		AmountReceived:  r.AmountReceived,
		Status:          r.Status,
	}
}

// EventType returns the event type
func (e *ReceivablePaymentRecordedEvent) EventType() string {
	return EventTypeReceivablePaymentRecorded
}
