package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CancelStaleOrdersCommandHandler cancels pending orders that exceeded the
// allowed age. All cancellations happen in a single transaction; events for
// every cancelled order are published after commit.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewCancelStaleOrdersCommandHandler creates a handler for stale order cleanup.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle retrieves all pending orders, cancels those created before the age
// cutoff, and persists each change within one transaction.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pending, err := orderRepo.GetAllInPendingStatus(ctx)
	if err != nil {
		return err
	}

	cutoff := h.now().Add(-cmd.MaxAge())
	var cancelled []*order.Order

	for _, aggregate := range pending {
		if aggregate.CreatedAt().After(cutoff) {
			continue
		}

		if err = aggregate.Cancel(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		cancelled = append(cancelled, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range cancelled {
		if err = publishAndClear(ctx, h.publisher, aggregate); err != nil {
			return err
		}
	}

	return nil
}
