package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForTenant finds an invoice by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindBySalesOrderNumber finds the invoice for a sales order number
	FindBySalesOrderNumber(ctx context.Context, tenantID uuid.UUID, salesOrderNumber string) (*Invoice, error)

	// FindAllForTenant finds all invoices for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice. A create that collides with the
	// tenant-scoped sales order number index returns shared.ErrAlreadyExists.
	Save(ctx context.Context, invoice *Invoice) error

	// DeleteForTenant hard-deletes an invoice for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts invoices for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsBySalesOrderNumber checks if an invoice exists for a sales order number
	ExistsBySalesOrderNumber(ctx context.Context, tenantID uuid.UUID, salesOrderNumber string) (bool, error)
}
