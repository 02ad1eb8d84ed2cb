package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appbilling "github.com/ordercash/backend/internal/application/billing"
	appfinance "github.com/ordercash/backend/internal/application/finance"
	appfulfillment "github.com/ordercash/backend/internal/application/fulfillment"
	apptrade "github.com/ordercash/backend/internal/application/trade"
	"github.com/ordercash/backend/internal/domain/billing"
	"github.com/ordercash/backend/internal/domain/finance"
	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/ordercash/backend/internal/domain/trade"
	"github.com/ordercash/backend/internal/infrastructure/event"
)

// lifecycleFixture wires real repositories, services and the in-memory event
// bus against a sqlite database, mirroring the production wiring in
// cmd/server.
type lifecycleFixture struct {
	orderRepo       *GormSalesOrderRepository
	deliveryRepo    *GormDeliveryRepository
	invoiceRepo     *GormInvoiceRepository
	receivableRepo  *GormReceivableRepository
	orderService    *apptrade.SalesOrderService
	deliveryService *appfulfillment.DeliveryService
	bus             *event.InMemoryEventBus
}

func setupLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&trade.SalesOrder{},
		&fulfillment.Delivery{},
		&billing.Invoice{},
		&finance.Receivable{},
	))

	log := zap.NewNop()
	f := &lifecycleFixture{
		orderRepo:      NewGormSalesOrderRepository(db),
		deliveryRepo:   NewGormDeliveryRepository(db),
		invoiceRepo:    NewGormInvoiceRepository(db),
		receivableRepo: NewGormReceivableRepository(db),
	}

	f.orderService = apptrade.NewSalesOrderService(f.orderRepo, NewGormTransactionScope(db), log)
	f.deliveryService = appfulfillment.NewDeliveryService(f.deliveryRepo, log)

	f.bus = event.NewInMemoryEventBus(log)
	invoiceHandler := appbilling.NewDeliveryCompletedHandler(f.invoiceRepo, f.orderRepo, log)
	receivableHandler := appfinance.NewInvoiceCreatedHandler(f.receivableRepo, log)
	f.bus.Subscribe(invoiceHandler, invoiceHandler.EventTypes()...)
	f.bus.Subscribe(receivableHandler, receivableHandler.EventTypes()...)
	invoiceHandler.SetEventPublisher(f.bus)
	f.orderService.SetEventPublisher(f.bus)
	f.deliveryService.SetEventPublisher(f.bus)

	return f
}

func TestOrderToCashLifecycle(t *testing.T) {
	f := setupLifecycleFixture(t)
	ctx := context.Background()
	tenantID := uuid.New()

	order, err := f.orderService.Create(ctx, tenantID, apptrade.CreateSalesOrderRequest{
		OrderNumber:  "SO-2026-1001",
		CustomerID:   uuid.New(),
		CustomerName: "Acme Trading Co",
		ProductName:  "Steel Pipe",
		Quantity:     decimal.NewFromInt(3),
		Unit:         "pcs",
		UnitPrice:    decimal.NewFromFloat(10.00),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)

	// The paired delivery was created in the same transaction.
	delivery, err := f.deliveryRepo.FindBySalesOrderID(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, fulfillment.DeliveryStatusPending, delivery.Status)

	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "in_transit"})
	require.NoError(t, err)

	// No invoice before the delivery completes.
	_, err = f.invoiceRepo.FindBySalesOrderNumber(ctx, tenantID, order.OrderNumber)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "delivered"})
	require.NoError(t, err)

	// Completion ran the full chain: invoice, receivable, order status.
	invoice, err := f.invoiceRepo.FindBySalesOrderNumber(ctx, tenantID, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
	assert.True(t, decimal.NewFromFloat(30.00).Equal(invoice.TotalAmount))
	assert.Equal(t, order.CustomerID, invoice.CustomerID)

	receivables, err := f.receivableRepo.FindBySalesOrderNumber(ctx, tenantID, order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, receivables, 1)
	assert.True(t, decimal.NewFromFloat(30.00).Equal(receivables[0].AmountDue))
	require.NotNil(t, receivables[0].InvoiceID)
	assert.Equal(t, invoice.ID, *receivables[0].InvoiceID)
	assert.Equal(t, finance.ReceivableStatusUnpaid, receivables[0].Status)

	reloaded, err := f.orderRepo.FindByIDForTenant(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusInvoiced, reloaded.Status)
	assert.NotNil(t, reloaded.DeliveredAt)
	assert.NotNil(t, reloaded.InvoicedAt)

	count, err := f.invoiceRepo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrderToCashLifecycle_RedeliveredEventIsIdempotent(t *testing.T) {
	f := setupLifecycleFixture(t)
	ctx := context.Background()
	tenantID := uuid.New()

	order, err := f.orderService.Create(ctx, tenantID, apptrade.CreateSalesOrderRequest{
		OrderNumber:  "SO-2026-1002",
		CustomerID:   uuid.New(),
		CustomerName: "Acme Trading Co",
		Quantity:     decimal.NewFromInt(2),
		UnitPrice:    decimal.NewFromFloat(5.00),
	})
	require.NoError(t, err)

	delivery, err := f.deliveryRepo.FindBySalesOrderID(ctx, tenantID, order.ID)
	require.NoError(t, err)

	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "in_transit"})
	require.NoError(t, err)
	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "delivered"})
	require.NoError(t, err)

	// A redelivered completion event must not open a second invoice or
	// receivable.
	delivered, err := f.deliveryRepo.FindByIDForTenant(ctx, tenantID, delivery.ID)
	require.NoError(t, err)
	require.NoError(t, f.bus.Publish(ctx, fulfillment.NewDeliveryCompletedEvent(delivered)))

	invoiceCount, err := f.invoiceRepo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), invoiceCount)

	receivables, err := f.receivableRepo.FindBySalesOrderNumber(ctx, tenantID, order.OrderNumber)
	require.NoError(t, err)
	assert.Len(t, receivables, 1)
}

func TestOrderToCashLifecycle_AdvancePastDeliveredRejected(t *testing.T) {
	f := setupLifecycleFixture(t)
	ctx := context.Background()
	tenantID := uuid.New()

	order, err := f.orderService.Create(ctx, tenantID, apptrade.CreateSalesOrderRequest{
		OrderNumber:  "SO-2026-1003",
		CustomerID:   uuid.New(),
		CustomerName: "Acme Trading Co",
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.NewFromFloat(9.99),
	})
	require.NoError(t, err)

	delivery, err := f.deliveryRepo.FindBySalesOrderID(ctx, tenantID, order.ID)
	require.NoError(t, err)

	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "in_transit"})
	require.NoError(t, err)
	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "delivered"})
	require.NoError(t, err)

	_, err = f.deliveryService.Advance(ctx, tenantID, delivery.ID, appfulfillment.AdvanceDeliveryRequest{Status: "delivered"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition delivery")
}
