// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and event publication after commit.
package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// publishAndClear delivers the aggregate's uncommitted events after the
// transaction committed, then empties the buffer. A failure between publish
// and clear leaves the events buffered, so redelivery is possible and
// consumers must be idempotent.
func publishAndClear(ctx context.Context, publisher ports.EventPublisher, aggregate *order.Order) error {
	if publisher == nil {
		return nil
	}

	events := aggregate.UncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	if err := publisher.Publish(ctx, events); err != nil {
		return err
	}

	aggregate.ClearUncommittedEvents()
	return nil
}
