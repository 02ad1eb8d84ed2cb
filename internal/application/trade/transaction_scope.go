package trade

import (
	"context"

	"github.com/ordercash/backend/internal/domain/fulfillment"
	"github.com/ordercash/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the order and delivery
// repositories. Order creation writes the sales order and its paired delivery
// record as one atomic unit, so "order exists without delivery row" cannot
// happen.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories participating
// in the order creation transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the sales order repository scoped to the current transaction
	OrderRepo() trade.SalesOrderRepository
	// DeliveryRepo returns the delivery repository scoped to the current transaction
	DeliveryRepo() fulfillment.DeliveryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	orderRepo    trade.SalesOrderRepository
	deliveryRepo fulfillment.DeliveryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(orderRepo trade.SalesOrderRepository, deliveryRepo fulfillment.DeliveryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.SalesOrderRepository {
	return s.orderRepo
}

// DeliveryRepo returns the delivery repository.
func (s *NoOpTransactionScope) DeliveryRepo() fulfillment.DeliveryRepository {
	return s.deliveryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
