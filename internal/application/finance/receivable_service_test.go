package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ordercash/backend/internal/domain/finance"
	"github.com/ordercash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testReceivable(t *testing.T, tenantID uuid.UUID, due float64) *finance.Receivable {
	receivable, err := finance.NewReceivable(tenantID, "RCV-1700000000002", uuid.New(), "SO-1700000000000",
		nil, uuid.New(), "Test Customer", decimal.NewFromFloat(due))
	require.NoError(t, err)
	receivable.ClearDomainEvents()
	return receivable
}

func TestReceivableService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("partial then full settlement", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		service := NewReceivableService(repo, zap.NewNop())

		receivable := testReceivable(t, tenantID, 100)
		repo.On("FindByIDForTenant", ctx, tenantID, receivable.ID).Return(receivable, nil)
		repo.On("Save", ctx, receivable).Return(nil)

		resp, err := service.RecordPayment(ctx, tenantID, receivable.ID, RecordPaymentRequest{Amount: decimal.NewFromFloat(40)})
		require.NoError(t, err)
		assert.Equal(t, "partial", resp.Status)
		assert.True(t, resp.Outstanding.Equal(decimal.NewFromFloat(60)))

		resp, err = service.RecordPayment(ctx, tenantID, receivable.ID, RecordPaymentRequest{Amount: decimal.NewFromFloat(60)})
		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.True(t, resp.Outstanding.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		service := NewReceivableService(repo, zap.NewNop())

		receivable := testReceivable(t, tenantID, 100)
		repo.On("FindByIDForTenant", ctx, tenantID, receivable.ID).Return(receivable, nil)

		_, err := service.RecordPayment(ctx, tenantID, receivable.ID, RecordPaymentRequest{Amount: decimal.Zero})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		service := NewReceivableService(repo, zap.NewNop())

		id := uuid.New()
		repo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := service.RecordPayment(ctx, tenantID, id, RecordPaymentRequest{Amount: decimal.NewFromFloat(10)})
		require.Error(t, err)
	})
}

func TestReceivableService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("override to paid without payments", func(t *testing.T) {
		repo := new(MockReceivableRepository)
		service := NewReceivableService(repo, zap.NewNop())

		receivable := testReceivable(t, tenantID, 100)
		repo.On("FindByIDForTenant", ctx, tenantID, receivable.ID).Return(receivable, nil)
		repo.On("Save", ctx, receivable).Return(nil)

		resp, err := service.UpdateStatus(ctx, tenantID, receivable.ID, UpdateReceivableStatusRequest{Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.True(t, resp.AmountReceived.IsZero())
	})
}

func TestReceivableService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockReceivableRepository)
	service := NewReceivableService(repo, zap.NewNop())

	repo.On("Save", ctx, mock.AnythingOfType("*finance.Receivable")).Return(nil)

	resp, err := service.Create(ctx, tenantID, CreateReceivableRequest{
		SalesOrderID:     uuid.New(),
		SalesOrderNumber: "SO-1700000000000",
		CustomerID:       uuid.New(),
		CustomerName:     "Test Customer",
		AmountDue:        decimal.NewFromFloat(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "unpaid", resp.Status)
	assert.Contains(t, resp.ReceivableNumber, "RCV-")
}
