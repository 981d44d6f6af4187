package order

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// MaxQuantityPerItem limits the quantity a single order item may carry.
const MaxQuantityPerItem = 100

// OrderItem is an entity owned exclusively by the Order aggregate.
// It references an external product by identifier only and fixes the unit
// price at the moment the item was added; later catalog price changes do not
// affect it.
//
// OrderItem cannot be constructed or mutated from outside the aggregate: the
// constructor and the quantity setter are unexported, so every change routes
// through Order and keeps the order total consistent.
type OrderItem struct {
	id           kernel.UUID
	productID    kernel.UUID
	quantity     int
	pricePerUnit kernel.Money
}

func newOrderItem(productID kernel.UUID, quantity int, pricePerUnit kernel.Money) (*OrderItem, error) {
	item := &OrderItem{
		id: kernel.NewUUID(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPricePerUnit(pricePerUnit),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func restoreOrderItem(id, productID kernel.UUID, quantity int, pricePerUnit kernel.Money) (*OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	item := &OrderItem{id: id}
	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPricePerUnit(pricePerUnit),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// ID returns the item's identifier within the aggregate.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the referenced product.
func (i *OrderItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// PricePerUnit returns the unit price fixed at add time.
func (i *OrderItem) PricePerUnit() kernel.Money {
	return i.pricePerUnit
}

// Total returns pricePerUnit multiplied by quantity.
func (i *OrderItem) Total() (kernel.Money, error) {
	return i.pricePerUnit.Multiply(i.quantity)
}

// IsEqual compares two items by identifier.
func (i *OrderItem) IsEqual(other *OrderItem) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *OrderItem) clone() *OrderItem {
	copied := *i
	return &copied
}

func (i *OrderItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxQuantityPerItem {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantityPerItem)
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setPricePerUnit(pricePerUnit kernel.Money) error {
	if err := pricePerUnit.Validate(); err != nil {
		return err
	}
	i.pricePerUnit = pricePerUnit
	return nil
}
