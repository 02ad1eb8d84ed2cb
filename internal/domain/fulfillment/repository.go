package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/shared"
)

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	// FindByIDForTenant finds a delivery by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Delivery, error)

	// FindBySalesOrderID finds the delivery paired with a sales order
	FindBySalesOrderID(ctx context.Context, tenantID, salesOrderID uuid.UUID) (*Delivery, error)

	// FindAllForTenant finds all deliveries for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Delivery, error)

	// FindByStatus finds deliveries by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status DeliveryStatus, filter shared.Filter) ([]Delivery, error)

	// Save creates or updates a delivery
	Save(ctx context.Context, delivery *Delivery) error

	// CountForTenant counts deliveries for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
