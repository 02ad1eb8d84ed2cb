package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/ordercash/backend/internal/domain/shared/valueobject"
	"github.com/ordercash/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(orderRepo trade.SalesOrderRepository, txScope TransactionScope, logger *zap.Logger) *SalesOrderService {
	return &SalesOrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a sales order together with its paired delivery record.
// Both rows are written in one transaction, so a successfully created order
// always has exactly one pending delivery.
func (s *SalesOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	orderNumber := req.OrderNumber
	if orderNumber == "" {
		orderNumber = trade.GenerateOrderNumber(time.Now())
	} else {
		exists, err := s.orderRepo.ExistsByOrderNumber(ctx, tenantID, orderNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Order number already exists: "+orderNumber)
		}
	}

	order, err := trade.NewSalesOrder(
		tenantID,
		orderNumber,
		req.CustomerID,
		req.CustomerName,
		req.ProductID,
		req.ProductName,
		req.Quantity,
		req.Unit,
		valueobject.NewMoneyUSD(req.UnitPrice),
	)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	delivery, err := fulfillment.NewDelivery(tenantID, order.ID, order.OrderNumber, order.CustomerName)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return repos.DeliveryRepo().Save(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	s.logger.Info("Sales order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("tenant_id", tenantID.String()))

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves a sales order by order number
func (s *SalesOrderService) GetByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter SalesOrderListFilter) ([]SalesOrderResponse, int64, error) {
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
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSalesOrderResponses(orders), total, nil
}

// UpdateStatus applies an operator-driven status change. Only processing and
// cancelled may be set through this path; delivered and invoiced are driven
// by the fulfillment and billing flows.
func (s *SalesOrderService) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderStatusRequest) (*SalesOrderResponse, error) {
	target := trade.OrderStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+req.Status)
	}
	if !target.IsOperatorTransition() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status "+req.Status+" cannot be set directly")
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Sales order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()))

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Delete hard-deletes a sales order. Derived delivery, invoice and receivable
// rows are intentionally left in place.
func (s *SalesOrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID); err != nil {
		return err
	}

	if err := s.orderRepo.DeleteForTenant(ctx, tenantID, orderID); err != nil {
		return err
	}

	s.logger.Info("Sales order deleted",
		zap.String("order_id", orderID.String()),
		zap.String("tenant_id", tenantID.String()))
	return nil
}

// GetStatusSummary retrieves order counts by status for a tenant
func (s *SalesOrderService) GetStatusSummary(ctx context.Context, tenantID uuid.UUID) (*OrderStatusSummary, error) {
	summary := &OrderStatusSummary{}

	counts := []struct {
		status trade.OrderStatus
		target *int64
	}{
		{trade.OrderStatusPending, &summary.Pending},
		{trade.OrderStatusProcessing, &summary.Processing},
		{trade.OrderStatusCancelled, &summary.Cancelled},
		{trade.OrderStatusDelivered, &summary.Delivered},
		{trade.OrderStatusInvoiced, &summary.Invoiced},
	}
	for _, c := range counts {
		count, err := s.orderRepo.CountByStatus(ctx, tenantID, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
		summary.Total += count
	}

	return summary, nil
}

func (s *SalesOrderService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	order.ClearDomainEvents()
}
