package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
)

// ReceivableRepository defines the interface for receivable persistence
type ReceivableRepository interface {
	// FindByIDForTenant finds a receivable by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Receivable, error)

	// FindBySalesOrderNumber finds receivables for a sales order number
	FindBySalesOrderNumber(ctx context.Context, tenantID uuid.UUID, salesOrderNumber string) ([]Receivable, error)

	// FindAllForTenant finds all receivables for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Receivable, error)

	// FindByStatus finds receivables by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status ReceivableStatus, filter shared.Filter) ([]Receivable, error)

	// Save creates or updates a receivable
	Save(ctx context.Context, receivable *Receivable) error

	// DeleteForTenant hard-deletes a receivable for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts receivables for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByInvoiceID checks if a receivable was already opened for an invoice
	ExistsByInvoiceID(ctx context.Context, tenantID, invoiceID uuid.UUID) (bool, error)
}
