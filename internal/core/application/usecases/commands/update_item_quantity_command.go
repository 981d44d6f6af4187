package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrUpdateItemQuantityCommandIsNotConstructed = errors.New(
		"UpdateItemQuantityCommand must be created via NewUpdateItemQuantityCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// UpdateItemQuantityCommand represents a request to change the quantity of an
// existing item on a pending order. A zero quantity is rejected here; item
// removal is a separate command.
type UpdateItemQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateItemQuantityCommand creates a command to change an item quantity.
func NewUpdateItemQuantityCommand(orderID, itemID kernel.UUID, quantity int) (UpdateItemQuantityCommand, error) {
	command := UpdateItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItemID(itemID),
		command.setQuantity(quantity),
	); err != nil {
		return UpdateItemQuantityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateItemQuantityCommandIsNotConstructed if validation fails.
func (c UpdateItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemQuantityCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c UpdateItemQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the item to change.
func (c UpdateItemQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the new quantity.
func (c UpdateItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateItemQuantityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateItemQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateItemQuantityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
