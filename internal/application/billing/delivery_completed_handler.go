package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ordercash/backend/internal/domain/billing"
	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/ordercash/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// DeliveryCompletedHandler handles DeliveryCompletedEvent and creates the
// invoice for the delivered sales order. The delivery status write has
// already been committed when this runs; any failure here is logged by the
// event bus and never rolls the delivery back.
//
// Idempotency is enforced twice: a cheap existence pre-check, and the
// tenant-scoped unique index on the invoice's sales order number which turns
// a concurrent double-create into shared.ErrAlreadyExists.
type DeliveryCompletedHandler struct {
	invoiceRepo    billing.InvoiceRepository
	orderRepo      trade.SalesOrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDeliveryCompletedHandler creates a new handler for delivery completed events
func NewDeliveryCompletedHandler(
	invoiceRepo billing.InvoiceRepository,
	orderRepo trade.SalesOrderRepository,
	logger *zap.Logger,
) *DeliveryCompletedHandler {
	return &DeliveryCompletedHandler{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher used to emit the resulting invoice events
func (h *DeliveryCompletedHandler) SetEventPublisher(publisher shared.EventPublisher) {
	h.eventPublisher = publisher
}

// EventTypes returns the event types this handler is interested in
func (h *DeliveryCompletedHandler) EventTypes() []string {
	return []string{fulfillment.EventTypeDeliveryCompleted}
}

// Handle processes a DeliveryCompletedEvent by creating an invoice copied
// from the originating sales order
func (h *DeliveryCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completedEvent, ok := event.(*fulfillment.DeliveryCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", fulfillment.EventTypeDeliveryCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			fulfillment.EventTypeDeliveryCompleted, event.EventType())
	}

	tenantID := completedEvent.TenantID()

	h.logger.Info("processing delivery completed event for invoice creation",
		zap.String("delivery_id", completedEvent.DeliveryID.String()),
		zap.String("sales_order_id", completedEvent.SalesOrderID.String()),
		zap.String("sales_order_number", completedEvent.SalesOrderNumber),
	)

	order, err := h.orderRepo.FindByIDForTenant(ctx, tenantID, completedEvent.SalesOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Order was deleted after delivery; nothing to invoice.
			h.logger.Warn("sales order not found, skipping invoice creation",
				zap.String("sales_order_id", completedEvent.SalesOrderID.String()),
				zap.String("sales_order_number", completedEvent.SalesOrderNumber),
			)
			return nil
		}
		return fmt.Errorf("failed to load sales order: %w", err)
	}

	exists, err := h.invoiceRepo.ExistsBySalesOrderNumber(ctx, tenantID, order.OrderNumber)
	if err != nil {
		return fmt.Errorf("failed to check existing invoice: %w", err)
	}
	if exists {
		h.logger.Warn("invoice already exists for sales order, skipping",
			zap.String("sales_order_number", order.OrderNumber),
		)
		return nil
	}

	invoice, err := billing.NewInvoice(tenantID, billing.GenerateInvoiceNumber(time.Now()), billing.InvoiceSource{
		SalesOrderID:     order.ID,
		SalesOrderNumber: order.OrderNumber,
		CustomerID:       order.CustomerID,
		CustomerName:     order.CustomerName,
		ProductID:        order.ProductID,
		ProductName:      order.ProductName,
		Quantity:         order.Quantity,
		Unit:             order.Unit,
		UnitPrice:        order.UnitPrice,
		TotalAmount:      order.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if err := h.invoiceRepo.Save(ctx, invoice); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// A concurrent completion won the insert; this call is done.
			h.logger.Warn("concurrent invoice creation detected, skipping",
				zap.String("sales_order_number", order.OrderNumber),
			)
			return nil
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	h.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("sales_order_number", order.OrderNumber),
		zap.String("total_amount", invoice.TotalAmount.String()),
	)

	h.updateOrderStatus(ctx, order)
	h.publishInvoiceEvents(ctx, invoice)

	return nil
}

// updateOrderStatus records the delivered and invoiced transitions on the
// order. A failure leaves the order status stale but never undoes the
// invoice; it is logged for manual reconciliation.
func (h *DeliveryCompletedHandler) updateOrderStatus(ctx context.Context, order *trade.SalesOrder) {
	if err := order.MarkDelivered(); err != nil {
		h.logger.Warn("could not mark order delivered",
			zap.String("order_number", order.OrderNumber),
			zap.String("status", order.Status.String()),
			zap.Error(err))
		return
	}
	if err := order.MarkInvoiced(); err != nil {
		h.logger.Warn("could not mark order invoiced",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
	if err := h.orderRepo.Save(ctx, order); err != nil {
		h.logger.Error("failed to save order status after invoicing",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
}

func (h *DeliveryCompletedHandler) publishInvoiceEvents(ctx context.Context, invoice *billing.Invoice) {
	if h.eventPublisher == nil {
		return
	}
	for _, event := range invoice.GetDomainEvents() {
		if err := h.eventPublisher.Publish(ctx, event); err != nil {
			h.logger.Warn("failed to publish invoice event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	invoice.ClearDomainEvents()
}

// Ensure DeliveryCompletedHandler implements shared.EventHandler
var _ shared.EventHandler = (*DeliveryCompletedHandler)(nil)
