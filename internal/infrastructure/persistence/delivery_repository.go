package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByIDForTenant finds a delivery by ID within a tenant
func (r *GormDeliveryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fulfillment.Delivery, error) {
	var delivery fulfillment.Delivery
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindBySalesOrderID finds the delivery paired with a sales order
func (r *GormDeliveryRepository) FindBySalesOrderID(ctx context.Context, tenantID, salesOrderID uuid.UUID) (*fulfillment.Delivery, error) {
	var delivery fulfillment.Delivery
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sales_order_id = ?", tenantID, salesOrderID).
		First(&delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindAllForTenant finds all deliveries for a tenant with filtering
func (r *GormDeliveryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fulfillment.Delivery, error) {
	var deliveries []fulfillment.Delivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fulfillment.Delivery{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindByStatus finds deliveries by status for a tenant
func (r *GormDeliveryRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status fulfillment.DeliveryStatus, filter shared.Filter) ([]fulfillment.Delivery, error) {
	var deliveries []fulfillment.Delivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fulfillment.Delivery{}).
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// Save creates or updates a delivery. A create that collides with the
// tenant-scoped sales order index returns shared.ErrAlreadyExists.
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *fulfillment.Delivery) error {
	if err := r.db.WithContext(ctx).Save(delivery).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CountForTenant counts deliveries for a tenant with optional filters
func (r *GormDeliveryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fulfillment.Delivery{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDeliveryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormDeliveryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sales_order_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormDeliveryRepository implements DeliveryRepository
var _ fulfillment.DeliveryRepository = (*GormDeliveryRepository)(nil)
