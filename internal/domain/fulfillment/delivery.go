package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
)

// DeliveryStatus represents the fulfillment state of a delivery record
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// IsValid checks if the delivery status is valid
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s DeliveryStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Progression is strictly forward-only; skipping in_transit is allowed,
// delivered is terminal.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	transitions := map[DeliveryStatus][]DeliveryStatus{
		DeliveryStatusPending:   {DeliveryStatusInTransit, DeliveryStatusDelivered},
		DeliveryStatusInTransit: {DeliveryStatusDelivered},
		DeliveryStatusDelivered: {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// Delivery is the fulfillment-tracking aggregate, paired 1:1 with a sales order.
// It carries a strong reference to the originating order plus the denormalized
// order number used by the derived billing ledgers.
type Delivery struct {
	shared.TenantAggregateRoot
	SalesOrderID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_deliveries_tenant_order,composite:tenant_id" json:"sales_order_id"`
	SalesOrderNumber string         `gorm:"size:50;not null;index" json:"sales_order_number"`
	CustomerName     string         `gorm:"size:200" json:"customer_name"`
	Status           DeliveryStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	DeliveryDate     *time.Time     `json:"delivery_date,omitempty"`
	Remark           string         `gorm:"size:500" json:"remark"`
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "deliveries"
}

// NewDelivery creates a pending delivery record for a sales order
func NewDelivery(tenantID, salesOrderID uuid.UUID, salesOrderNumber, customerName string) (*Delivery, error) {
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "sales order ID is required")
	}
	if salesOrderNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "sales order number is required")
	}

	return &Delivery{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SalesOrderID:        salesOrderID,
		SalesOrderNumber:    salesOrderNumber,
		CustomerName:        customerName,
		Status:              DeliveryStatusPending,
	}, nil
}

// Advance moves the delivery to the target status, recording the delivery
// date when one is supplied. Reaching delivered raises a DeliveryCompleted
// event; illegal transitions are rejected.
func (d *Delivery) Advance(target DeliveryStatus, deliveryDate *time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "invalid delivery status: "+target.String())
	}
	if !d.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot transition delivery from "+d.Status.String()+" to "+target.String())
	}

	d.Status = target
	if deliveryDate != nil {
		d.DeliveryDate = deliveryDate
	}
	d.UpdatedAt = time.Now()

	if target == DeliveryStatusDelivered {
		if d.DeliveryDate == nil {
			now := time.Now()
			d.DeliveryDate = &now
		}
		d.AddDomainEvent(NewDeliveryCompletedEvent(d))
	}

	return nil
}

// SetRemark updates the delivery remark
func (d *Delivery) SetRemark(remark string) {
	d.Remark = remark
	d.UpdatedAt = time.Now()
}

// IsDelivered checks if the delivery has reached its terminal state
func (d *Delivery) IsDelivered() bool {
	return d.Status == DeliveryStatusDelivered
}
