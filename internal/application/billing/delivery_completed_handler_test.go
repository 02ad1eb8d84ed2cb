package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/billing"
	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/ordercash/backend/internal/domain/shared/valueobject"
	"github.com/ordercash/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySalesOrderNumber(ctx context.Context, tenantID uuid.UUID, salesOrderNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, salesOrderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsBySalesOrderNumber(ctx context.Context, tenantID uuid.UUID, salesOrderNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, salesOrderNumber)
	return args.Bool(0), args.Error(1)
}

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status trade.OrderStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	return args.Bool(0), args.Error(1)
}

// Test helpers
func testOrderAndEvent(t *testing.T, tenantID uuid.UUID) (*trade.SalesOrder, *fulfillment.DeliveryCompletedEvent) {
	order, err := trade.NewSalesOrder(tenantID, "SO-1700000000000", uuid.New(), "Test Customer",
		nil, "Widget", decimal.NewFromInt(3), "pcs", valueobject.NewMoneyUSDFromFloat(10.00))
	require.NoError(t, err)
	order.ClearDomainEvents()

	delivery, err := fulfillment.NewDelivery(tenantID, order.ID, order.OrderNumber, order.CustomerName)
	require.NoError(t, err)
	require.NoError(t, delivery.Advance(fulfillment.DeliveryStatusDelivered, nil))

	events := delivery.GetDomainEvents()
	require.Len(t, events, 1)
	return order, events[0].(*fulfillment.DeliveryCompletedEvent)
}

// ============================================
// Handle Tests
// ============================================

func TestDeliveryCompletedHandler_Handle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates invoice copied from the sales order", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		orderRepo := new(MockSalesOrderRepository)
		handler := NewDeliveryCompletedHandler(invoiceRepo, orderRepo, zap.NewNop())

		order, event := testOrderAndEvent(t, tenantID)
		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		invoiceRepo.On("ExistsBySalesOrderNumber", ctx, tenantID, order.OrderNumber).Return(false, nil)

		var savedInvoice *billing.Invoice
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).
			Run(func(args mock.Arguments) { savedInvoice = args.Get(1).(*billing.Invoice) }).
			Return(nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		require.NoError(t, handler.Handle(ctx, event))

		require.NotNil(t, savedInvoice)
		assert.Equal(t, order.OrderNumber, savedInvoice.SalesOrderNumber)
		assert.Equal(t, order.CustomerID, savedInvoice.CustomerID)
		assert.True(t, savedInvoice.TotalAmount.Equal(order.TotalAmount))
		assert.Equal(t, billing.InvoiceStatusUnpaid, savedInvoice.Status)
		assert.Contains(t, savedInvoice.InvoiceNumber, "INV-")

		assert.Equal(t, trade.OrderStatusInvoiced, order.Status)
		invoiceRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("skips when invoice already exists", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		orderRepo := new(MockSalesOrderRepository)
		handler := NewDeliveryCompletedHandler(invoiceRepo, orderRepo, zap.NewNop())

		order, event := testOrderAndEvent(t, tenantID)
		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		invoiceRepo.On("ExistsBySalesOrderNumber", ctx, tenantID, order.OrderNumber).Return(true, nil)

		require.NoError(t, handler.Handle(ctx, event))
		invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("treats duplicate insert as idempotent success", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		orderRepo := new(MockSalesOrderRepository)
		handler := NewDeliveryCompletedHandler(invoiceRepo, orderRepo, zap.NewNop())

		order, event := testOrderAndEvent(t, tenantID)
		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		invoiceRepo.On("ExistsBySalesOrderNumber", ctx, tenantID, order.OrderNumber).Return(false, nil)
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(shared.ErrAlreadyExists)

		require.NoError(t, handler.Handle(ctx, event))
		// The losing call must not advance the order; the winner already did.
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("skips silently when order was deleted", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		orderRepo := new(MockSalesOrderRepository)
		handler := NewDeliveryCompletedHandler(invoiceRepo, orderRepo, zap.NewNop())

		_, event := testOrderAndEvent(t, tenantID)
		orderRepo.On("FindByIDForTenant", ctx, tenantID, event.SalesOrderID).Return(nil, shared.ErrNotFound)

		require.NoError(t, handler.Handle(ctx, event))
		invoiceRepo.AssertNotCalled(t, "ExistsBySalesOrderNumber", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns error on unexpected event type", func(t *testing.T) {
		handler := NewDeliveryCompletedHandler(new(MockInvoiceRepository), new(MockSalesOrderRepository), zap.NewNop())

		order, _ := testOrderAndEvent(t, tenantID)
		err := handler.Handle(ctx, trade.NewSalesOrderCreatedEvent(order))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected event type")
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		orderRepo := new(MockSalesOrderRepository)
		handler := NewDeliveryCompletedHandler(invoiceRepo, orderRepo, zap.NewNop())

		order, event := testOrderAndEvent(t, tenantID)
		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		invoiceRepo.On("ExistsBySalesOrderNumber", ctx, tenantID, order.OrderNumber).Return(false, errors.New("db down"))

		err := handler.Handle(ctx, event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check existing invoice")
	})

	t.Run("order status failure does not fail invoicing", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		orderRepo := new(MockSalesOrderRepository)
		handler := NewDeliveryCompletedHandler(invoiceRepo, orderRepo, zap.NewNop())

		order, event := testOrderAndEvent(t, tenantID)
		require.NoError(t, order.TransitionTo(trade.OrderStatusCancelled))

		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		invoiceRepo.On("ExistsBySalesOrderNumber", ctx, tenantID, order.OrderNumber).Return(false, nil)
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

		require.NoError(t, handler.Handle(ctx, event))
		assert.Equal(t, trade.OrderStatusCancelled, order.Status)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
