package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// ChangeShippingAddressCommandHandler handles replacing an order's delivery address.
type ChangeShippingAddressCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeShippingAddressCommandHandler creates a handler for address changes.
func NewChangeShippingAddressCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) ChangeShippingAddressCommandHandler {
	return ChangeShippingAddressCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the order, replaces the address through the aggregate, persists
// the change, and publishes the recorded events after commit.
func (h *ChangeShippingAddressCommandHandler) Handle(ctx context.Context, cmd ChangeShippingAddressCommand) error {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeShippingAddress(cmd.NewAddress()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return publishAndClear(ctx, h.publisher, aggregate)
}
