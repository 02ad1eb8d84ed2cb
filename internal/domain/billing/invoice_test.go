package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testInvoiceSource() InvoiceSource {
	productID := uuid.New()
	return InvoiceSource{
		SalesOrderID:     uuid.New(),
		SalesOrderNumber: "SO-1700000000000",
		CustomerID:       uuid.New(),
		CustomerName:     "Test Customer",
		ProductID:        &productID,
		ProductName:      "Widget",
		Quantity:         decimal.NewFromInt(3),
		Unit:             "pcs",
		UnitPrice:        decimal.NewFromFloat(10.00),
		TotalAmount:      decimal.NewFromFloat(30.00),
	}
}

func createTestInvoice(t *testing.T) *Invoice {
	invoice, err := NewInvoice(uuid.New(), "INV-1700000000001", testInvoiceSource())
	require.NoError(t, err)
	return invoice
}

// ============================================
// NewInvoice Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	tenantID := uuid.New()

	t.Run("copies fields from the sales order snapshot", func(t *testing.T) {
		source := testInvoiceSource()
		invoice, err := NewInvoice(tenantID, "INV-1700000000001", source)
		require.NoError(t, err)
		require.NotNil(t, invoice)

		assert.Equal(t, tenantID, invoice.TenantID)
		assert.Equal(t, "INV-1700000000001", invoice.InvoiceNumber)
		assert.Equal(t, source.SalesOrderID, invoice.SalesOrderID)
		assert.Equal(t, source.SalesOrderNumber, invoice.SalesOrderNumber)
		assert.Equal(t, source.CustomerID, invoice.CustomerID)
		assert.Equal(t, source.CustomerName, invoice.CustomerName)
		assert.Equal(t, source.ProductName, invoice.ProductName)
		assert.True(t, invoice.Quantity.Equal(source.Quantity))
		assert.True(t, invoice.UnitPrice.Equal(source.UnitPrice))
		assert.True(t, invoice.TotalAmount.Equal(source.TotalAmount))
		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
		assert.Nil(t, invoice.PaidAt)
		assert.WithinDuration(t, time.Now(), invoice.InvoiceDate, time.Second)
	})

	t.Run("publishes InvoiceCreated event", func(t *testing.T) {
		invoice := createTestInvoice(t)

		events := invoice.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())

		event, ok := events[0].(*InvoiceCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, invoice.ID, event.InvoiceID)
		assert.Equal(t, invoice.SalesOrderNumber, event.SalesOrderNumber)
		assert.True(t, event.TotalAmount.Equal(invoice.TotalAmount))
	})

	t.Run("fails with empty invoice number", func(t *testing.T) {
		_, err := NewInvoice(tenantID, "", testInvoiceSource())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invoice number cannot be empty")
	})

	t.Run("fails with nil sales order ID", func(t *testing.T) {
		source := testInvoiceSource()
		source.SalesOrderID = uuid.Nil
		_, err := NewInvoice(tenantID, "INV-1", source)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sales order ID is required")
	})

	t.Run("fails with nil customer ID", func(t *testing.T) {
		source := testInvoiceSource()
		source.CustomerID = uuid.Nil
		_, err := NewInvoice(tenantID, "INV-1", source)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer ID is required")
	})
}

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "INV-1700000000000", GenerateInvoiceNumber(now))
}

// ============================================
// Status Tests
// ============================================

func TestInvoice_MarkPaid(t *testing.T) {
	t.Run("marks unpaid invoice as paid", func(t *testing.T) {
		invoice := createTestInvoice(t)
		invoice.ClearDomainEvents()

		err := invoice.MarkPaid()
		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		require.NotNil(t, invoice.PaidAt)
		assert.True(t, invoice.IsPaid())

		events := invoice.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoicePaid, events[0].EventType())
	})

	t.Run("fails when already paid", func(t *testing.T) {
		invoice := createTestInvoice(t)
		require.NoError(t, invoice.MarkPaid())

		err := invoice.MarkPaid()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already paid")
	})
}

func TestInvoice_SetStatus(t *testing.T) {
	t.Run("rejects reverting a paid invoice to unpaid", func(t *testing.T) {
		invoice := createTestInvoice(t)
		require.NoError(t, invoice.MarkPaid())

		err := invoice.SetStatus(InvoiceStatusUnpaid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot transition invoice")
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.NotNil(t, invoice.PaidAt)
	})

	t.Run("transitions unpaid to paid", func(t *testing.T) {
		invoice := createTestInvoice(t)

		require.NoError(t, invoice.SetStatus(InvoiceStatusPaid))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		require.NotNil(t, invoice.PaidAt)
	})

	t.Run("setting the same status is a no-op", func(t *testing.T) {
		invoice := createTestInvoice(t)
		invoice.ClearDomainEvents()

		require.NoError(t, invoice.SetStatus(InvoiceStatusUnpaid))
		assert.Empty(t, invoice.GetDomainEvents())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		invoice := createTestInvoice(t)

		err := invoice.SetStatus(InvoiceStatus("void"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid invoice status")
	})
}
