package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrAddItemCommandIsNotConstructed = errors.New(
	"AddItemCommand must be created via NewAddItemCommand constructor",
)

// AddItemCommand represents a request to add an item to a pending order.
// The unit price carried by the command is fixed on the item at add time.
type AddItemCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	productID    kernel.UUID
	quantity     int
	pricePerUnit kernel.Money

	guard guard.ConstructorGuard
}

// NewAddItemCommand creates a command to add an item to an order.
// Validates the identifiers and the price; the quantity range is enforced by
// the aggregate.
func NewAddItemCommand(
	orderID, productID kernel.UUID,
	quantity int,
	pricePerUnit kernel.Money,
) (AddItemCommand, error) {
	command := AddItemCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setProductID(productID),
		command.setPricePerUnit(pricePerUnit),
	); err != nil {
		return AddItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddItemCommandIsNotConstructed if validation fails.
func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AddItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the referenced product identifier.
func (c AddItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the quantity to add.
func (c AddItemCommand) Quantity() int {
	return c.quantity
}

// PricePerUnit returns the unit price to fix on the item.
func (c AddItemCommand) PricePerUnit() kernel.Money {
	return c.pricePerUnit
}

func (c *AddItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddItemCommand) setPricePerUnit(pricePerUnit kernel.Money) error {
	if err := pricePerUnit.Validate(); err != nil {
		return err
	}

	c.pricePerUnit = pricePerUnit
	return nil
}
