package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/ordercash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusInvoiced   OrderStatus = "invoiced"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCancelled,
		OrderStatusDelivered, OrderStatusInvoiced:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled || target == OrderStatusDelivered
	case OrderStatusProcessing:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered:
		return target == OrderStatusInvoiced
	case OrderStatusInvoiced, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsOperatorTransition returns true if the target status may be set through
// the status-update endpoint. Delivered and invoiced are system-driven by the
// fulfillment and billing flows and cannot be set directly.
func (s OrderStatus) IsOperatorTransition() bool {
	return s == OrderStatusProcessing || s == OrderStatusCancelled
}

// SalesOrder represents a sales order aggregate root
// A sales order covers a single product line; the total is computed once at
// creation time from quantity and unit price
type SalesOrder struct {
	shared.TenantAggregateRoot
	OrderNumber  string `gorm:"size:50;not null;uniqueIndex:idx_sales_orders_tenant_number,composite:tenant_id"`
	CustomerID   uuid.UUID
	CustomerName string
	ProductID    *uuid.UUID
	ProductName  string
	Quantity     decimal.Decimal
	Unit         string
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       OrderStatus `gorm:"size:20;not null;index"`
	Remark       string
	CancelledAt  *time.Time
	DeliveredAt  *time.Time
	InvoicedAt   *time.Time
}

// NewSalesOrder creates a new sales order in pending status
func NewSalesOrder(
	tenantID uuid.UUID,
	orderNumber string,
	customerID uuid.UUID,
	customerName string,
	productID *uuid.UUID,
	productName string,
	quantity decimal.Decimal,
	unit string,
	unitPrice valueobject.Money,
) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	order := &SalesOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		ProductID:           productID,
		ProductName:         productName,
		Quantity:            quantity,
		Unit:                unit,
		UnitPrice:           unitPrice.Amount(),
		TotalAmount:         quantity.Mul(unitPrice.Amount()),
		Status:              OrderStatusPending,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// GenerateOrderNumber produces a default order number from the current time.
// Uniqueness is ultimately guaranteed by the database, not by this scheme.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("SO-%d", now.UnixMilli())
}

// TransitionTo moves the order to the target status, enforcing the
// transition table
func (o *SalesOrder) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	switch target {
	case OrderStatusCancelled:
		o.CancelledAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusInvoiced:
		o.InvoicedAt = &now
	}
	o.UpdatedAt = now

	return nil
}

// MarkDelivered records the delivery completion on the order
func (o *SalesOrder) MarkDelivered() error {
	return o.TransitionTo(OrderStatusDelivered)
}

// MarkInvoiced records that an invoice has been generated for the order
func (o *SalesOrder) MarkInvoiced() error {
	return o.TransitionTo(OrderStatusInvoiced)
}

// SetRemark sets the order remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// GetTotalAmountMoney returns the total amount as Money
func (o *SalesOrder) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// GetUnitPriceMoney returns the unit price as Money
func (o *SalesOrder) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.UnitPrice)
}

// IsPending returns true if the order is pending
func (o *SalesOrder) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCancelled returns true if the order is cancelled
func (o *SalesOrder) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsTerminal returns true if the order is in a terminal state
func (o *SalesOrder) IsTerminal() bool {
	return o.Status == OrderStatusInvoiced || o.Status == OrderStatusCancelled
}
