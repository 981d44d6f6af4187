package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// MaxItemsPerOrder limits the number of distinct items in a single order.
const MaxItemsPerOrder = 10

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrEmptyOrder is returned when an order is created without items or paid
	// while holding no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// ItemData carries the inputs for a single item when creating an order.
type ItemData struct {
	ProductID    kernel.UUID
	Quantity     int
	PricePerUnit kernel.Money
}

// RestoredItemData carries a persisted item when reconstituting an order.
type RestoredItemData struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	Quantity     int
	PricePerUnit kernel.Money
}

// Option configures optional aggregate behavior at construction time.
type Option func(*Order)

// WithTotalRecalculationEvents makes the order emit an
// OrderTotalAmountRecalculatedEvent after every item mutation.
// By default no recalculation events are emitted.
func WithTotalRecalculationEvents() Option {
	return func(o *Order) {
		o.emitRecalculations = true
	}
}

// Order is the aggregate root for a customer order. It owns its OrderItems,
// enforces all invariants, and buffers domain events until the application
// layer publishes them.
//
// Invariants:
//   - totalAmount always equals the sum of all item totals in one currency;
//     items in a different currency are rejected when added
//   - status transitions follow the fixed graph in Status
//   - any item mutation recomputes the total and bumps updatedAt and version
//   - a terminal order (Delivered, Cancelled) accepts only read-only queries
//
// All mutations route through aggregate methods; Items and UncommittedEvents
// return snapshots, never the backing collections.
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	shippingAddress kernel.ShippingAddress
	status          Status
	items           []*OrderItem
	totalAmount     kernel.Money
	createdAt       time.Time
	updatedAt       time.Time

	// version supports optimistic concurrency control at save time.
	version int

	events             []DomainEvent
	emitRecalculations bool
	isConstructed      bool
}

// NewOrder creates a new order in Pending status with at least one item,
// computes the initial total, and records an OrderCreatedEvent.
//
// The currency of the first item fixes the order's currency; any item in a
// different currency fails the construction.
func NewOrder(
	id, customerID kernel.UUID,
	shippingAddress kernel.ShippingAddress,
	items []ItemData,
	opts ...Option,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	for _, opt := range opts {
		opt(o)
	}

	for _, data := range items {
		item, err := newOrderItem(data.ProductID, data.Quantity, data.PricePerUnit)
		if err != nil {
			return nil, err
		}
		if err = o.ensureCurrency(data.PricePerUnit); err != nil {
			return nil, err
		}
		o.items = append(o.items, item)
	}

	if len(o.items) > MaxItemsPerOrder {
		return nil, errs.NewValueIsOutOfRangeError("order items", len(o.items), 1, MaxItemsPerOrder)
	}

	if err := o.recomputeTotal(); err != nil {
		return nil, err
	}

	o.addEvent(NewOrderCreatedEvent(o.id, o.customerID, o.totalAmount))
	return o, nil
}

// RestoreOrder reconstitutes a persisted order without emitting events.
// Intended for persistence adapters and test fixtures; all invariants are
// re-validated.
func RestoreOrder(
	id, customerID kernel.UUID,
	shippingAddress kernel.ShippingAddress,
	status Status,
	currency kernel.Currency,
	items []RestoredItemData,
	createdAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	zero, err := kernel.NewZeroMoney(currency)
	if err != nil {
		return nil, err
	}
	o.totalAmount = zero

	for _, data := range items {
		item, itemErr := restoreOrderItem(data.ID, data.ProductID, data.Quantity, data.PricePerUnit)
		if itemErr != nil {
			return nil, itemErr
		}
		if err = o.ensureCurrency(data.PricePerUnit); err != nil {
			return nil, err
		}
		o.items = append(o.items, item)
	}

	if err = o.recomputeTotal(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer the order belongs to.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// ShippingAddress returns the current delivery address.
func (o *Order) ShippingAddress() kernel.ShippingAddress {
	return o.shippingAddress
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the sum of all item totals.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// CreatedAt returns the creation time (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic-concurrency version counter.
func (o *Order) Version() int {
	return o.version
}

// Items returns a deep-copied snapshot of the order's items.
// Mutating the returned items has no effect on the aggregate.
func (o *Order) Items() []*OrderItem {
	snapshot := make([]*OrderItem, 0, len(o.items))
	for _, item := range o.items {
		snapshot = append(snapshot, item.clone())
	}
	return snapshot
}

// AddItem appends a new item to a pending order, recomputes the total, and
// records an OrderItemAddedEvent. The unit price is fixed at this moment.
//
// Fails when the order is not Pending, the quantity is out of range, the item
// limit is reached, or the price currency differs from the order's currency.
func (o *Order) AddItem(productID kernel.UUID, quantity int, pricePerUnit kernel.Money) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateItemsModifiable(); err != nil {
		return err
	}
	if len(o.items) >= MaxItemsPerOrder {
		return errs.NewValueIsOutOfRangeError("order items", len(o.items)+1, 1, MaxItemsPerOrder)
	}

	item, err := newOrderItem(productID, quantity, pricePerUnit)
	if err != nil {
		return err
	}
	if err = o.ensureCurrency(pricePerUnit); err != nil {
		return err
	}

	o.items = append(o.items, item)
	if err = o.recomputeTotal(); err != nil {
		return err
	}

	o.touch()
	o.addEvent(NewOrderItemAddedEvent(o.id, item.ID(), productID, quantity, pricePerUnit))
	o.emitTotalRecalculated()
	return nil
}

// RemoveItem removes an item from a pending order by its identifier and
// recomputes the total.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateItemsModifiable(); err != nil {
		return err
	}

	index := o.findItemIndex(itemID)
	if index < 0 {
		return errs.NewObjectNotFoundError("orderItemId", itemID.String())
	}

	o.items = append(o.items[:index], o.items[index+1:]...)
	if err := o.recomputeTotal(); err != nil {
		return err
	}

	o.touch()
	o.addEvent(NewOrderItemRemovedEvent(o.id, itemID))
	o.emitTotalRecalculated()
	return nil
}

// UpdateItemQuantity changes the quantity of an existing item on a pending
// order. A non-positive quantity is rejected; use RemoveItem to drop an item.
func (o *Order) UpdateItemQuantity(itemID kernel.UUID, newQuantity int) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateItemsModifiable(); err != nil {
		return err
	}

	index := o.findItemIndex(itemID)
	if index < 0 {
		return errs.NewObjectNotFoundError("orderItemId", itemID.String())
	}

	if err := o.items[index].setQuantity(newQuantity); err != nil {
		return err
	}
	if err := o.recomputeTotal(); err != nil {
		return err
	}

	o.touch()
	o.emitTotalRecalculated()
	return nil
}

// ChangeShippingAddress replaces the delivery address.
// Legal only before the order has been shipped, delivered, or cancelled.
func (o *Order) ChangeShippingAddress(newAddress kernel.ShippingAddress) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateAddressChangeable(); err != nil {
		return err
	}
	if err := newAddress.Validate(); err != nil {
		return err
	}

	o.shippingAddress = newAddress
	o.touch()
	o.addEvent(NewShippingAddressChangedEvent(o.id, newAddress))
	return nil
}

// Pay transitions the order from Pending to Paid.
// An order without items cannot be paid.
func (o *Order) Pay() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}
	if len(o.items) == 0 {
		return fmt.Errorf("%w: cannot pay", ErrEmptyOrder)
	}

	o.changeStatus(newStatus)
	return nil
}

// Ship transitions the order from Paid to Shipped.
func (o *Order) Ship() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.changeStatus(newStatus)
	return nil
}

// Deliver transitions the order from Shipped to Delivered (terminal).
func (o *Order) Deliver() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.changeStatus(newStatus)
	return nil
}

// Cancel transitions the order from Pending or Paid to Cancelled (terminal).
// Cancellation is a status transition, not entity destruction.
func (o *Order) Cancel() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.changeStatus(newStatus)
	return nil
}

// UncommittedEvents returns a snapshot of the pending-event buffer.
// The caller cannot mutate aggregate state through the returned slice.
func (o *Order) UncommittedEvents() []DomainEvent {
	return append([]DomainEvent(nil), o.events...)
}

// ClearUncommittedEvents empties the pending-event buffer.
// The orchestrating layer calls this after successful publication; a failure
// between publish and clear can duplicate delivery on retry, so event
// consumers must be idempotent.
func (o *Order) ClearUncommittedEvents() {
	o.events = nil
}

// Clone returns a deep, independent copy of the order.
// Used at the repository boundary so stored and in-flight aggregates never
// alias each other.
func (o *Order) Clone() *Order {
	copied := *o
	copied.items = make([]*OrderItem, 0, len(o.items))
	for _, item := range o.items {
		copied.items = append(copied.items, item.clone())
	}
	copied.events = append([]DomainEvent(nil), o.events...)
	return &copied
}

func (o *Order) findItemIndex(itemID kernel.UUID) int {
	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return i
		}
	}
	return -1
}

// ensureCurrency fixes the order currency on first use and rejects items in
// any other currency before the aggregate state changes.
func (o *Order) ensureCurrency(price kernel.Money) error {
	if o.totalAmount.Validate() != nil {
		zero, err := kernel.NewZeroMoney(price.Currency())
		if err != nil {
			return err
		}
		o.totalAmount = zero
		return nil
	}
	if o.totalAmount.Currency() != price.Currency() {
		return fmt.Errorf("%w: order is in %s, item is in %s",
			kernel.ErrCurrencyMismatch, o.totalAmount.Currency(), price.Currency())
	}
	return nil
}

func (o *Order) recomputeTotal() error {
	total, err := kernel.NewZeroMoney(o.totalAmount.Currency())
	if err != nil {
		return err
	}
	for _, item := range o.items {
		itemTotal, itemErr := item.Total()
		if itemErr != nil {
			return itemErr
		}
		total, err = total.Add(itemTotal)
		if err != nil {
			return err
		}
	}
	o.totalAmount = total
	return nil
}

func (o *Order) changeStatus(newStatus Status) {
	from := o.status
	o.status = newStatus
	o.touch()
	o.addEvent(NewOrderStatusChangedEvent(o.id, from, newStatus))
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
	o.version++
}

func (o *Order) addEvent(event DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) emitTotalRecalculated() {
	if o.emitRecalculations {
		o.addEvent(NewOrderTotalAmountRecalculatedEvent(o.id, o.totalAmount))
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setShippingAddress(address kernel.ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("order version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
