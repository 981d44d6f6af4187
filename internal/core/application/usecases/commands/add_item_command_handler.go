package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// AddItemCommandHandler handles adding an item to an existing order.
type AddItemCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAddItemCommandHandler creates a handler for item addition operations.
func NewAddItemCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the order, adds the item through the aggregate, persists the
// change, and publishes the recorded events after commit.
func (h *AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) error {
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

	if err = aggregate.AddItem(cmd.ProductID(), cmd.Quantity(), cmd.PricePerUnit()); err != nil {
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
