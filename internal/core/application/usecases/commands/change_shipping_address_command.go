package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrChangeShippingAddressCommandIsNotConstructed = errors.New(
	"ChangeShippingAddressCommand must be created via NewChangeShippingAddressCommand constructor",
)

// ChangeShippingAddressCommand represents a request to replace the delivery
// address of an order that has not yet been shipped.
type ChangeShippingAddressCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	newAddress kernel.ShippingAddress

	guard guard.ConstructorGuard
}

// NewChangeShippingAddressCommand creates a command to replace the shipping address.
func NewChangeShippingAddressCommand(
	orderID kernel.UUID, newAddress kernel.ShippingAddress,
) (ChangeShippingAddressCommand, error) {
	command := ChangeShippingAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNewAddress(newAddress),
	); err != nil {
		return ChangeShippingAddressCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeShippingAddressCommandIsNotConstructed if validation fails.
func (c ChangeShippingAddressCommand) Validate() error {
	return c.guard.Validate(ErrChangeShippingAddressCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c ChangeShippingAddressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewAddress returns the replacement delivery address.
func (c ChangeShippingAddressCommand) NewAddress() kernel.ShippingAddress {
	return c.newAddress
}

func (c *ChangeShippingAddressCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeShippingAddressCommand) setNewAddress(newAddress kernel.ShippingAddress) error {
	if err := newAddress.Validate(); err != nil {
		return err
	}

	c.newAddress = newAddress
	return nil
}
