package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// UpdateItemQuantityCommandHandler handles changing the quantity of an order item.
type UpdateItemQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateItemQuantityCommandHandler creates a handler for quantity updates.
func NewUpdateItemQuantityCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) UpdateItemQuantityCommandHandler {
	return UpdateItemQuantityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the order, updates the item quantity through the aggregate,
// persists the change, and publishes the recorded events after commit.
func (h *UpdateItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateItemQuantityCommand) error {
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

	if err = aggregate.UpdateItemQuantity(cmd.ItemID(), cmd.Quantity()); err != nil {
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
