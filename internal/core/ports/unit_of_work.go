package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repository writes performed inside the unit become visible to other readers
// only after Commit; Rollback discards them. Client code must explicitly
// manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit atomically applies all staged writes.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards all staged writes.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction. The repository stages its writes inside the transaction
	// started by Begin().
	OrderRepository() OrderRepository
}
