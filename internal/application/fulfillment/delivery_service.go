package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DeliveryService handles delivery tracking operations
type DeliveryService struct {
	deliveryRepo   fulfillment.DeliveryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(deliveryRepo fulfillment.DeliveryRepository, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DeliveryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves a delivery by ID
func (s *DeliveryService) GetByID(ctx context.Context, tenantID, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, deliveryID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// GetBySalesOrderID retrieves the delivery paired with a sales order
func (s *DeliveryService) GetBySalesOrderID(ctx context.Context, tenantID, salesOrderID uuid.UUID) (*DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.FindBySalesOrderID(ctx, tenantID, salesOrderID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// List retrieves deliveries with filtering and pagination
func (s *DeliveryService) List(ctx context.Context, tenantID uuid.UUID, filter DeliveryListFilter) ([]DeliveryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	var (
		deliveries []fulfillment.Delivery
		err        error
	)
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
		deliveries, err = s.deliveryRepo.FindByStatus(ctx, tenantID, *filter.Status, domainFilter)
	} else {
		deliveries, err = s.deliveryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.deliveryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDeliveryResponses(deliveries), total, nil
}

// Advance moves a delivery forward in its lifecycle. The status write is
// authoritative: once it is persisted, downstream invoice creation runs via
// the completion event and its failure never fails this call.
func (s *DeliveryService) Advance(ctx context.Context, tenantID, deliveryID uuid.UUID, req AdvanceDeliveryRequest) (*DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, deliveryID)
	if err != nil {
		return nil, err
	}

	if err := delivery.Advance(fulfillment.DeliveryStatus(req.Status), req.DeliveryDate); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, delivery); err != nil {
		return nil, err
	}

	s.logger.Info("Delivery advanced",
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("sales_order_number", delivery.SalesOrderNumber),
		zap.String("status", delivery.Status.String()))

	s.publishEvents(ctx, delivery)

	response := ToDeliveryResponse(delivery)
	return &response, nil
}

func (s *DeliveryService) publishEvents(ctx context.Context, delivery *fulfillment.Delivery) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range delivery.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Invoice creation is reconciled manually if this ever fires;
			// the delivery transition stays committed.
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("delivery_id", delivery.ID.String()),
				zap.Error(err))
		}
	}
	delivery.ClearDomainEvents()
}
