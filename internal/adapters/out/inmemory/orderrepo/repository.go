// Package orderrepo provides an in-memory implementation of the order
// repository. Storage is a mutex-guarded map of deep-copied aggregates, so
// repository clients never alias the stored state.
package orderrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// MutationKind names a staged repository write.
type MutationKind int

const (
	MutationAdd MutationKind = iota
	MutationUpdate
	MutationDelete
)

// Mutation is a single staged write, applied by Apply as part of an atomic
// batch. Aggregate is nil for deletes.
type Mutation struct {
	Kind      MutationKind
	ID        kernel.UUID
	Aggregate *order.Order
}

// Repository is an in-memory order store implementing ports.OrderRepository.
// All reads and writes deep-copy the aggregate at the boundary; direct calls
// commit immediately, while transactional callers batch writes through Apply.
type Repository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

// NewRepository creates an empty in-memory order repository.
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// Add stores a new order. Fails when an order with the same ID already exists.
func (r *Repository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.add(aggregate)
}

// Update replaces a stored order. The incoming version must be newer than the
// stored one, otherwise the save lost an optimistic-concurrency race.
func (r *Repository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(aggregate)
}

// Get returns a deep copy of the stored order.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}

	return stored.Clone(), nil
}

// GetByCustomer returns deep copies of the customer's orders, newest first.
func (r *Repository) GetByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*order.Order, 0)
	for _, stored := range r.orders {
		if stored.CustomerID().IsEqual(customerID) {
			matches = append(matches, stored.Clone())
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt().After(matches[j].CreatedAt())
	})

	return matches, nil
}

// GetAllInPendingStatus returns deep copies of all orders in Pending status.
func (r *Repository) GetAllInPendingStatus(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*order.Order, 0)
	for _, stored := range r.orders {
		if stored.Status() == order.Pending {
			matches = append(matches, stored.Clone())
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt().Before(matches[j].CreatedAt())
	})

	return matches, nil
}

// Delete removes a stored order.
func (r *Repository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(id)
}

// Contains reports whether an order with the given ID is stored.
func (r *Repository) Contains(id kernel.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.orders[id]
	return ok
}

// Apply executes a batch of staged mutations atomically: every mutation is
// validated against the current state first, and nothing is written unless
// all of them pass.
func (r *Repository) Apply(mutations []Mutation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// dry run on a scratch view of existence and versions
	if err := r.validateBatch(mutations); err != nil {
		return err
	}

	for _, m := range mutations {
		switch m.Kind {
		case MutationAdd:
			r.store(m.Aggregate)
		case MutationUpdate:
			r.store(m.Aggregate)
		case MutationDelete:
			delete(r.orders, m.ID)
		}
	}

	return nil
}

func (r *Repository) validateBatch(mutations []Mutation) error {
	type state struct {
		exists  bool
		version int
	}

	view := make(map[kernel.UUID]state, len(mutations))
	lookup := func(id kernel.UUID) state {
		if s, ok := view[id]; ok {
			return s
		}
		if stored, ok := r.orders[id]; ok {
			return state{exists: true, version: stored.Version()}
		}
		return state{}
	}

	for _, m := range mutations {
		current := lookup(m.ID)

		switch m.Kind {
		case MutationAdd:
			if current.exists {
				return errs.NewObjectAlreadyExistsError("orderId", m.ID.String())
			}
			view[m.ID] = state{exists: true, version: m.Aggregate.Version()}
		case MutationUpdate:
			if !current.exists {
				return errs.NewObjectNotFoundError("orderId", m.ID.String())
			}
			if m.Aggregate.Version() <= current.version {
				return errs.NewVersionIsInvalidErrorWithCause("orderId",
					fmt.Errorf("stored version %d is not behind %d", current.version, m.Aggregate.Version()))
			}
			view[m.ID] = state{exists: true, version: m.Aggregate.Version()}
		case MutationDelete:
			if !current.exists {
				return errs.NewObjectNotFoundError("orderId", m.ID.String())
			}
			view[m.ID] = state{}
		}
	}

	return nil
}

func (r *Repository) add(aggregate *order.Order) error {
	if _, ok := r.orders[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("orderId", aggregate.ID().String())
	}

	r.store(aggregate)
	return nil
}

func (r *Repository) update(aggregate *order.Order) error {
	stored, ok := r.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	if aggregate.Version() <= stored.Version() {
		return errs.NewVersionIsInvalidErrorWithCause("orderId",
			fmt.Errorf("stored version %d is not behind %d", stored.Version(), aggregate.Version()))
	}

	r.store(aggregate)
	return nil
}

func (r *Repository) remove(id kernel.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	delete(r.orders, id)
	return nil
}

// store keeps a detached copy of the aggregate state. The uncommitted event
// buffer is not persisted; event delivery is the caller's concern.
func (r *Repository) store(aggregate *order.Order) {
	copied := aggregate.Clone()
	copied.ClearUncommittedEvents()
	r.orders[copied.ID()] = copied
}
