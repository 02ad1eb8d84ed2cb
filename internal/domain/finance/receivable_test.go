package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestReceivable(t *testing.T, due float64) *Receivable {
	invoiceID := uuid.New()
	receivable, err := NewReceivable(
		uuid.New(),
		"RCV-1700000000002",
		uuid.New(),
		"SO-1700000000000",
		&invoiceID,
		uuid.New(),
		"Test Customer",
		decimal.NewFromFloat(due),
	)
	require.NoError(t, err)
	receivable.ClearDomainEvents()
	return receivable
}

// ============================================
// NewReceivable Tests
// ============================================

func TestNewReceivable(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()
	customerID := uuid.New()

	t.Run("opens unpaid receivable", func(t *testing.T) {
		receivable, err := NewReceivable(tenantID, "RCV-1", orderID, "SO-1", nil, customerID, "Test Customer", decimal.NewFromFloat(100))
		require.NoError(t, err)
		require.NotNil(t, receivable)

		assert.Equal(t, tenantID, receivable.TenantID)
		assert.Equal(t, "RCV-1", receivable.ReceivableNumber)
		assert.Equal(t, orderID, receivable.SalesOrderID)
		assert.Equal(t, ReceivableStatusUnpaid, receivable.Status)
		assert.True(t, receivable.AmountReceived.IsZero())
		assert.True(t, receivable.AmountDue.Equal(decimal.NewFromFloat(100)))
		assert.Nil(t, receivable.SettledAt)

		events := receivable.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeReceivableCreated, events[0].EventType())
	})

	t.Run("fails with negative amount due", func(t *testing.T) {
		_, err := NewReceivable(tenantID, "RCV-1", orderID, "SO-1", nil, customerID, "Test Customer", decimal.NewFromFloat(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount due cannot be negative")
	})

	t.Run("fails with empty receivable number", func(t *testing.T) {
		_, err := NewReceivable(tenantID, "", orderID, "SO-1", nil, customerID, "Test Customer", decimal.NewFromFloat(100))
		require.Error(t, err)
	})

	t.Run("fails with nil customer ID", func(t *testing.T) {
		_, err := NewReceivable(tenantID, "RCV-1", orderID, "SO-1", nil, uuid.Nil, "Test Customer", decimal.NewFromFloat(100))
		require.Error(t, err)
	})
}

func TestGenerateReceivableNumber(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "RCV-1700000000000", GenerateReceivableNumber(now))
}

// ============================================
// RecordPayment Tests
// ============================================

func TestReceivable_RecordPayment(t *testing.T) {
	t.Run("partial payment derives partial status", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		err := receivable.RecordPayment(decimal.NewFromFloat(40))
		require.NoError(t, err)
		assert.True(t, receivable.AmountReceived.Equal(decimal.NewFromFloat(40)))
		assert.Equal(t, ReceivableStatusPartial, receivable.Status)
		assert.True(t, receivable.Outstanding().Equal(decimal.NewFromFloat(60)))
		assert.Nil(t, receivable.SettledAt)
	})

	t.Run("payments accumulate and settle at the due amount", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		amounts := []float64{25, 25, 50}
		for _, a := range amounts {
			require.NoError(t, receivable.RecordPayment(decimal.NewFromFloat(a)))
		}

		assert.True(t, receivable.AmountReceived.Equal(decimal.NewFromFloat(100)))
		assert.Equal(t, ReceivableStatusPaid, receivable.Status)
		assert.True(t, receivable.IsSettled())
		require.NotNil(t, receivable.SettledAt)
		assert.True(t, receivable.Outstanding().IsZero())
	})

	t.Run("overpayment is accepted without a cap", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		err := receivable.RecordPayment(decimal.NewFromFloat(150))
		require.NoError(t, err)
		assert.True(t, receivable.AmountReceived.Equal(decimal.NewFromFloat(150)))
		assert.Equal(t, ReceivableStatusPaid, receivable.Status)
		assert.True(t, receivable.Outstanding().IsZero())
	})

	t.Run("raises payment recorded event", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		require.NoError(t, receivable.RecordPayment(decimal.NewFromFloat(40)))

		events := receivable.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ReceivablePaymentRecordedEvent)
		require.True(t, ok)
		assert.True(t, event.PaymentAmount.Equal(decimal.NewFromFloat(40)))
		assert.True(t, event.AmountReceived.Equal(decimal.NewFromFloat(40)))
		assert.Equal(t, ReceivableStatusPartial, event.Status)
	})

	t.Run("rejects zero payment", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		err := receivable.RecordPayment(decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment amount must be positive")
	})

	t.Run("rejects negative payment", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		err := receivable.RecordPayment(decimal.NewFromFloat(-5))
		require.Error(t, err)
	})
}

// ============================================
// SetStatus Tests
// ============================================

func TestReceivable_SetStatus(t *testing.T) {
	t.Run("operator override can desynchronize status from amount", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		err := receivable.SetStatus(ReceivableStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, ReceivableStatusPaid, receivable.Status)
		assert.True(t, receivable.AmountReceived.IsZero())
		require.NotNil(t, receivable.SettledAt)
	})

	t.Run("reverting clears settled timestamp", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)
		require.NoError(t, receivable.SetStatus(ReceivableStatusPaid))

		require.NoError(t, receivable.SetStatus(ReceivableStatusPartial))
		assert.Nil(t, receivable.SettledAt)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		receivable := createTestReceivable(t, 100)

		err := receivable.SetStatus(ReceivableStatus("overdue"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid receivable status")
	})
}
