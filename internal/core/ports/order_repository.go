package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must hand out deep copies so callers never share state with
// the stored aggregates, and must enforce optimistic concurrency on Update
// using the aggregate's version counter.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Fails with an ObjectAlreadyExistsError when an order with the same
	// identifier is already stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with an ObjectNotFoundError when the order does not exist and
	// with a VersionIsInvalidError when the stored version has moved past
	// the aggregate's version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no order with the identifier exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCustomer retrieves all orders that belong to the given customer,
	// most recently created first.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAllInPendingStatus retrieves all orders still in Pending status.
	// Used by the stale-order cancellation workflow.
	GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error)

	// Delete removes an order aggregate from storage.
	// Returns an ObjectNotFoundError when no order with the identifier exists.
	Delete(ctx context.Context, id kernel.UUID) error
}
