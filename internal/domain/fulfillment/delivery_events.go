package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
)

const (
	AggregateTypeDelivery = "Delivery"

	EventTypeDeliveryCompleted = "DeliveryCompleted"
)

// DeliveryCompletedEvent is raised when a delivery reaches the delivered
// state. Billing subscribes to it to auto-create the invoice.
type DeliveryCompletedEvent struct {
	shared.BaseDomainEvent
	DeliveryID       uuid.UUID  `json:"delivery_id"`
	SalesOrderID     uuid.UUID  `json:"sales_order_id"`
	SalesOrderNumber string     `json:"sales_order_number"`
	CustomerName     string     `json:"customer_name"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
}

// NewDeliveryCompletedEvent creates a new delivery completed event
func NewDeliveryCompletedEvent(d *Delivery) *DeliveryCompletedEvent {
	return &DeliveryCompletedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeDeliveryCompleted, AggregateTypeDelivery, d.ID, d.TenantID),
		DeliveryID:       d.ID,
		SalesOrderID:     d.SalesOrderID,
		SalesOrderNumber: d.SalesOrderNumber,
		CustomerName:     d.CustomerName,
		DeliveryDate:     d.DeliveryDate,
	}
}

// EventType returns the event type
func (e *DeliveryCompletedEvent) EventType() string {
	return EventTypeDeliveryCompleted
}
