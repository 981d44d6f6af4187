package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Event names used for handler registration and logging.
const (
	OrderCreatedEventName                 = "order.created"
	OrderItemAddedEventName               = "order.item_added"
	OrderItemRemovedEventName             = "order.item_removed"
	OrderStatusChangedEventName           = "order.status_changed"
	ShippingAddressChangedEventName       = "order.shipping_address_changed"
	OrderTotalAmountRecalculatedEventName = "order.total_amount_recalculated"
)

// DomainEvent is an immutable record of a fact that occurred within the Order
// aggregate. Events carry a globally unique identifier and the time they
// occurred; once appended to the aggregate's buffer they are never mutated.
type DomainEvent interface {
	// EventID returns the globally unique identifier of the event.
	EventID() kernel.UUID

	// EventName returns the stable name used for handler registration.
	EventName() string

	// OccurredOn returns the UTC time the fact occurred.
	OccurredOn() time.Time

	// AggregateID returns the identifier of the order the event belongs to.
	AggregateID() kernel.UUID
}

type baseEvent struct {
	eventID     kernel.UUID
	occurredOn  time.Time
	aggregateID kernel.UUID
}

func newBaseEvent(aggregateID kernel.UUID) baseEvent {
	return baseEvent{
		eventID:     kernel.NewUUID(),
		occurredOn:  time.Now().UTC(),
		aggregateID: aggregateID,
	}
}

func (e baseEvent) EventID() kernel.UUID {
	return e.eventID
}

func (e baseEvent) OccurredOn() time.Time {
	return e.occurredOn
}

func (e baseEvent) AggregateID() kernel.UUID {
	return e.aggregateID
}

// OrderCreatedEvent records the creation of a new order.
type OrderCreatedEvent struct {
	baseEvent
	customerID  kernel.UUID
	totalAmount kernel.Money
}

// NewOrderCreatedEvent creates an OrderCreatedEvent snapshot.
func NewOrderCreatedEvent(orderID, customerID kernel.UUID, totalAmount kernel.Money) OrderCreatedEvent {
	return OrderCreatedEvent{
		baseEvent:   newBaseEvent(orderID),
		customerID:  customerID,
		totalAmount: totalAmount,
	}
}

// EventName returns OrderCreatedEventName.
func (e OrderCreatedEvent) EventName() string {
	return OrderCreatedEventName
}

// CustomerID returns the customer the order was created for.
func (e OrderCreatedEvent) CustomerID() kernel.UUID {
	return e.customerID
}

// TotalAmount returns the order total at creation time.
func (e OrderCreatedEvent) TotalAmount() kernel.Money {
	return e.totalAmount
}

// OrderItemAddedEvent records an item added to a pending order.
type OrderItemAddedEvent struct {
	baseEvent
	itemID       kernel.UUID
	productID    kernel.UUID
	quantity     int
	pricePerUnit kernel.Money
}

// NewOrderItemAddedEvent creates an OrderItemAddedEvent snapshot.
func NewOrderItemAddedEvent(
	orderID, itemID, productID kernel.UUID, quantity int, pricePerUnit kernel.Money,
) OrderItemAddedEvent {
	return OrderItemAddedEvent{
		baseEvent:    newBaseEvent(orderID),
		itemID:       itemID,
		productID:    productID,
		quantity:     quantity,
		pricePerUnit: pricePerUnit,
	}
}

// EventName returns OrderItemAddedEventName.
func (e OrderItemAddedEvent) EventName() string {
	return OrderItemAddedEventName
}

// ItemID returns the identifier of the added item.
func (e OrderItemAddedEvent) ItemID() kernel.UUID {
	return e.itemID
}

// ProductID returns the referenced product.
func (e OrderItemAddedEvent) ProductID() kernel.UUID {
	return e.productID
}

// Quantity returns the added quantity.
func (e OrderItemAddedEvent) Quantity() int {
	return e.quantity
}

// PricePerUnit returns the unit price fixed at add time.
func (e OrderItemAddedEvent) PricePerUnit() kernel.Money {
	return e.pricePerUnit
}

// OrderItemRemovedEvent records an item removed from a pending order.
type OrderItemRemovedEvent struct {
	baseEvent
	itemID kernel.UUID
}

// NewOrderItemRemovedEvent creates an OrderItemRemovedEvent snapshot.
func NewOrderItemRemovedEvent(orderID, itemID kernel.UUID) OrderItemRemovedEvent {
	return OrderItemRemovedEvent{
		baseEvent: newBaseEvent(orderID),
		itemID:    itemID,
	}
}

// EventName returns OrderItemRemovedEventName.
func (e OrderItemRemovedEvent) EventName() string {
	return OrderItemRemovedEventName
}

// ItemID returns the identifier of the removed item.
func (e OrderItemRemovedEvent) ItemID() kernel.UUID {
	return e.itemID
}

// OrderStatusChangedEvent records a status transition.
type OrderStatusChangedEvent struct {
	baseEvent
	from Status
	to   Status
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent snapshot.
func NewOrderStatusChangedEvent(orderID kernel.UUID, from, to Status) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		baseEvent: newBaseEvent(orderID),
		from:      from,
		to:        to,
	}
}

// EventName returns OrderStatusChangedEventName.
func (e OrderStatusChangedEvent) EventName() string {
	return OrderStatusChangedEventName
}

// From returns the source status.
func (e OrderStatusChangedEvent) From() Status {
	return e.from
}

// To returns the target status.
func (e OrderStatusChangedEvent) To() Status {
	return e.to
}

// ShippingAddressChangedEvent records a replaced shipping address.
type ShippingAddressChangedEvent struct {
	baseEvent
	newAddress kernel.ShippingAddress
}

// NewShippingAddressChangedEvent creates a ShippingAddressChangedEvent snapshot.
func NewShippingAddressChangedEvent(orderID kernel.UUID, newAddress kernel.ShippingAddress) ShippingAddressChangedEvent {
	return ShippingAddressChangedEvent{
		baseEvent:  newBaseEvent(orderID),
		newAddress: newAddress,
	}
}

// EventName returns ShippingAddressChangedEventName.
func (e ShippingAddressChangedEvent) EventName() string {
	return ShippingAddressChangedEventName
}

// NewAddress returns the replacement address.
func (e ShippingAddressChangedEvent) NewAddress() kernel.ShippingAddress {
	return e.newAddress
}

// OrderTotalAmountRecalculatedEvent records a recomputed order total.
// Emitted only when the aggregate was constructed with
// WithTotalRecalculationEvents.
type OrderTotalAmountRecalculatedEvent struct {
	baseEvent
	totalAmount kernel.Money
}

// NewOrderTotalAmountRecalculatedEvent creates an
// OrderTotalAmountRecalculatedEvent snapshot.
func NewOrderTotalAmountRecalculatedEvent(orderID kernel.UUID, totalAmount kernel.Money) OrderTotalAmountRecalculatedEvent {
	return OrderTotalAmountRecalculatedEvent{
		baseEvent:   newBaseEvent(orderID),
		totalAmount: totalAmount,
	}
}

// EventName returns OrderTotalAmountRecalculatedEventName.
func (e OrderTotalAmountRecalculatedEvent) EventName() string {
	return OrderTotalAmountRecalculatedEventName
}

// TotalAmount returns the recomputed total.
func (e OrderTotalAmountRecalculatedEvent) TotalAmount() kernel.Money {
	return e.totalAmount
}
