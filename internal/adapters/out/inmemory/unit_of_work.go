// Package inmemory provides an in-memory implementation of the Unit of Work
// pattern. A unit of work stages repository writes in a private buffer and
// applies them to the shared store atomically on Commit; Rollback discards
// them. Each business operation gets its own instance, so concurrent commands
// stay isolated until they commit.
package inmemory

import (
	"context"
	"errors"

	"ordering/internal/adapters/out/inmemory/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was not
// called or the transaction already finished.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates UnitOfWork instances sharing one backing store.
type UnitOfWorkFactory struct {
	store *orderrepo.Repository
}

// NewUnitOfWorkFactory creates a factory bound to the given store.
func NewUnitOfWorkFactory(store *orderrepo.Repository) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a fresh UnitOfWork with no active transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers repository writes between Begin and Commit.
type UnitOfWork struct {
	store *orderrepo.Repository
	tx    *txOrderRepository
}

// Begin starts a new transaction. Calling Begin on an active transaction is a
// no-op, mirroring nested-transaction behavior of database-backed units.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = &txOrderRepository{
		base:   uow.store,
		staged: make(map[kernel.UUID]*order.Order),
	}
	return nil
}

// Commit applies all staged writes to the shared store atomically.
// After commit the transaction is closed and cannot be reused.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	mutations := uow.tx.mutations
	uow.tx = nil
	return uow.store.Apply(mutations)
}

// Rollback discards all staged writes.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	uow.tx = nil
	return nil
}

// OrderRepository returns the repository bound to the current transaction.
// Outside a transaction it falls back to the auto-committing store.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx == nil {
		return uow.store
	}
	return uow.tx
}

// txOrderRepository is the transactional view of the store: writes are staged
// locally, reads see staged state layered over the committed state.
type txOrderRepository struct {
	base      *orderrepo.Repository
	mutations []orderrepo.Mutation

	// staged maps order ID to its pending state; a nil value marks a
	// staged delete.
	staged map[kernel.UUID]*order.Order
}

func (t *txOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if t.existsStagedOrBase(id) {
		return errs.NewObjectAlreadyExistsError("orderId", id.String())
	}

	t.stage(orderrepo.Mutation{Kind: orderrepo.MutationAdd, ID: id, Aggregate: aggregate.Clone()})
	return nil
}

func (t *txOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if !t.existsStagedOrBase(id) {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	// version conflicts surface at Commit, when Apply rechecks the batch
	// against the then-current store state
	t.stage(orderrepo.Mutation{Kind: orderrepo.MutationUpdate, ID: id, Aggregate: aggregate.Clone()})
	return nil
}

func (t *txOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if pending, ok := t.staged[id]; ok {
		if pending == nil {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return pending.Clone(), nil
	}

	return t.base.Get(ctx, id)
}

func (t *txOrderRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	committed, err := t.base.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return t.overlay(committed, func(o *order.Order) bool {
		return o.CustomerID().IsEqual(customerID)
	}), nil
}

func (t *txOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	committed, err := t.base.GetAllInPendingStatus(ctx)
	if err != nil {
		return nil, err
	}

	return t.overlay(committed, func(o *order.Order) bool {
		return o.Status() == order.Pending
	}), nil
}

func (t *txOrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if !t.existsStagedOrBase(id) {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	t.stage(orderrepo.Mutation{Kind: orderrepo.MutationDelete, ID: id})
	return nil
}

func (t *txOrderRepository) stage(m orderrepo.Mutation) {
	t.mutations = append(t.mutations, m)
	if m.Kind == orderrepo.MutationDelete {
		t.staged[m.ID] = nil
		return
	}
	t.staged[m.ID] = m.Aggregate
}

func (t *txOrderRepository) existsStagedOrBase(id kernel.UUID) bool {
	if pending, ok := t.staged[id]; ok {
		return pending != nil
	}
	return t.base.Contains(id)
}

// overlay replaces committed results with their staged versions, drops staged
// deletes, and appends staged aggregates the committed set did not contain.
func (t *txOrderRepository) overlay(committed []*order.Order, match func(*order.Order) bool) []*order.Order {
	seen := make(map[kernel.UUID]bool, len(committed))
	result := make([]*order.Order, 0, len(committed))

	for _, o := range committed {
		seen[o.ID()] = true

		pending, ok := t.staged[o.ID()]
		if !ok {
			result = append(result, o)
			continue
		}
		if pending != nil && match(pending) {
			result = append(result, pending.Clone())
		}
	}

	for id, pending := range t.staged {
		if seen[id] || pending == nil || !match(pending) {
			continue
		}
		result = append(result, pending.Clone())
	}

	return result
}
