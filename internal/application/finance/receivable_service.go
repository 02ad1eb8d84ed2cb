package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/finance"
	"github.com/ordercash/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceivableService handles receivable ledger operations
type ReceivableService struct {
	receivableRepo finance.ReceivableRepository
	logger         *zap.Logger
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivableRepo finance.ReceivableRepository, logger *zap.Logger) *ReceivableService {
	return &ReceivableService{
		receivableRepo: receivableRepo,
		logger:         logger,
	}
}

// Create opens a receivable manually, outside the invoice-driven flow
func (s *ReceivableService) Create(ctx context.Context, tenantID uuid.UUID, req CreateReceivableRequest) (*ReceivableResponse, error) {
	receivable, err := finance.NewReceivable(
		tenantID,
		finance.GenerateReceivableNumber(time.Now()),
		req.SalesOrderID,
		req.SalesOrderNumber,
		req.InvoiceID,
		req.CustomerID,
		req.CustomerName,
		req.AmountDue,
	)
	if err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}
	receivable.ClearDomainEvents()

	s.logger.Info("Receivable created",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("receivable_number", receivable.ReceivableNumber),
		zap.String("sales_order_number", receivable.SalesOrderNumber))

	response := ToReceivableResponse(receivable)
	return &response, nil
}

// GetByID retrieves a receivable by ID
func (s *ReceivableService) GetByID(ctx context.Context, tenantID, receivableID uuid.UUID) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, receivableID)
	if err != nil {
		return nil, err
	}
	response := ToReceivableResponse(receivable)
	return &response, nil
}

// List retrieves receivables with filtering and pagination
func (s *ReceivableService) List(ctx context.Context, tenantID uuid.UUID, filter ReceivableListFilter) ([]ReceivableResponse, int64, error) {
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
		receivables []finance.Receivable
		err         error
	)
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
		receivables, err = s.receivableRepo.FindByStatus(ctx, tenantID, *filter.Status, domainFilter)
	} else {
		receivables, err = s.receivableRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receivableRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReceivableResponses(receivables), total, nil
}

// RecordPayment adds a payment and derives the settlement status
func (s *ReceivableService) RecordPayment(ctx context.Context, tenantID, receivableID uuid.UUID, req RecordPaymentRequest) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, receivableID)
	if err != nil {
		return nil, err
	}

	if err := receivable.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}
	receivable.ClearDomainEvents()

	s.logger.Info("Payment recorded",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("amount_received", receivable.AmountReceived.String()),
		zap.String("status", receivable.Status.String()))

	response := ToReceivableResponse(receivable)
	return &response, nil
}

// UpdateStatus overrides the receivable status independently of the amounts
func (s *ReceivableService) UpdateStatus(ctx context.Context, tenantID, receivableID uuid.UUID, req UpdateReceivableStatusRequest) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, receivableID)
	if err != nil {
		return nil, err
	}

	if err := receivable.SetStatus(finance.ReceivableStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}

	s.logger.Info("Receivable status overridden",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("status", receivable.Status.String()))

	response := ToReceivableResponse(receivable)
	return &response, nil
}

// Delete hard-deletes a receivable
func (s *ReceivableService) Delete(ctx context.Context, tenantID, receivableID uuid.UUID) error {
	if _, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, receivableID); err != nil {
		return err
	}
	return s.receivableRepo.DeleteForTenant(ctx, tenantID, receivableID)
}
