package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ChangeOrderStatusCommandHandler handles lifecycle transitions of an order.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the order, applies the requested transition through the
// aggregate, persists the change, and publishes the OrderStatusChangedEvent
// after commit.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	if err = applyAction(aggregate, cmd.Action()); err != nil {
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

func applyAction(aggregate *order.Order, action StatusAction) error {
	switch action {
	case ActionPay:
		return aggregate.Pay()
	case ActionShip:
		return aggregate.Ship()
	case ActionDeliver:
		return aggregate.Deliver()
	case ActionCancel:
		return aggregate.Cancel()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatusAction, action)
	}
}
