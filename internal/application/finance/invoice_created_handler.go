package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/ordercash/backend/internal/domain/billing"
	"github.com/ordercash/backend/internal/domain/finance"
	"github.com/ordercash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceCreatedHandler handles InvoiceCreatedEvent and opens the matching
// receivable, mirroring the invoice-from-delivery pattern one step further
// down the chain.
type InvoiceCreatedHandler struct {
	receivableRepo finance.ReceivableRepository
	logger         *zap.Logger
}

// NewInvoiceCreatedHandler creates a new handler for invoice created events
func NewInvoiceCreatedHandler(receivableRepo finance.ReceivableRepository, logger *zap.Logger) *InvoiceCreatedHandler {
	return &InvoiceCreatedHandler{
		receivableRepo: receivableRepo,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceCreatedHandler) EventTypes() []string {
	return []string{billing.EventTypeInvoiceCreated}
}

// Handle processes an InvoiceCreatedEvent by opening a receivable for the
// invoiced amount
func (h *InvoiceCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*billing.InvoiceCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", billing.EventTypeInvoiceCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			billing.EventTypeInvoiceCreated, event.EventType())
	}

	tenantID := createdEvent.TenantID()

	h.logger.Info("processing invoice created event for receivable creation",
		zap.String("invoice_id", createdEvent.InvoiceID.String()),
		zap.String("invoice_number", createdEvent.InvoiceNumber),
		zap.String("sales_order_number", createdEvent.SalesOrderNumber),
		zap.String("total_amount", createdEvent.TotalAmount.String()),
	)

	// Idempotency check: one receivable per invoice
	exists, err := h.receivableRepo.ExistsByInvoiceID(ctx, tenantID, createdEvent.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to check existing receivable: %w", err)
	}
	if exists {
		h.logger.Warn("receivable already exists for invoice, skipping",
			zap.String("invoice_id", createdEvent.InvoiceID.String()),
		)
		return nil
	}

	invoiceID := createdEvent.InvoiceID
	receivable, err := finance.NewReceivable(
		tenantID,
		finance.GenerateReceivableNumber(time.Now()),
		createdEvent.SalesOrderID,
		createdEvent.SalesOrderNumber,
		&invoiceID,
		createdEvent.CustomerID,
		createdEvent.CustomerName,
		createdEvent.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to create receivable: %w", err)
	}

	if err := h.receivableRepo.Save(ctx, receivable); err != nil {
		return fmt.Errorf("failed to save receivable: %w", err)
	}

	h.logger.Info("receivable created",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("receivable_number", receivable.ReceivableNumber),
		zap.String("invoice_number", createdEvent.InvoiceNumber),
		zap.String("amount_due", receivable.AmountDue.String()),
	)

	return nil
}

// Ensure InvoiceCreatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*InvoiceCreatedHandler)(nil)
