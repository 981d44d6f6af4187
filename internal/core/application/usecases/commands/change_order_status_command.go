package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

// StatusAction names a lifecycle transition requested on an order.
type StatusAction string

const (
	ActionPay     StatusAction = "pay"
	ActionShip    StatusAction = "ship"
	ActionDeliver StatusAction = "deliver"
	ActionCancel  StatusAction = "cancel"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrUnknownStatusAction = errors.New("unknown status action")
)

// ChangeOrderStatusCommand represents a request to move an order through its
// lifecycle: pay, ship, deliver, or cancel. Whether the transition is legal
// from the order's current status is decided by the aggregate.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  StatusAction

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to request a status transition.
func NewChangeOrderStatusCommand(orderID kernel.UUID, action StatusAction) (ChangeOrderStatusCommand, error) {
	command := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAction(action),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested lifecycle transition.
func (c ChangeOrderStatusCommand) Action() StatusAction {
	return c.action
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setAction(action StatusAction) error {
	switch action {
	case ActionPay, ActionShip, ActionDeliver, ActionCancel:
		c.action = action
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatusAction, action)
	}
}
