package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

// ErrInvalidOrderState is returned when an operation is not allowed in the
// order's current status, including illegal status transitions.
var ErrInvalidOrderState = errors.New("operation is not allowed in the current order status")

// Status represents the lifecycle state of an order.
// It implements a state machine with fixed, monotonic transitions:
//
//	Pending ──> Paid ──> Shipped ──> Delivered
//	   │          │
//	   └──────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no operation may mutate an order in
// either state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status. Items and the shipping address may only
	// be edited while the order is Pending.
	Pending

	// Paid indicates the order has been paid and awaits shipment.
	Paid

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before shipment. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Paid:      "Paid",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// Used when reconstructing orders from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateItemsModifiable checks that items may be added, removed, or changed.
// Items are editable only while the order is Pending.
func (s Status) ValidateItemsModifiable() error {
	if s != Pending {
		return fmt.Errorf("%w: items cannot be modified in status %s", ErrInvalidOrderState, s)
	}
	return nil
}

// ValidateAddressChangeable checks that the shipping address may be replaced.
// The address is frozen once the order has been shipped, delivered, or cancelled.
func (s Status) ValidateAddressChangeable() error {
	if s != Pending && s != Paid {
		return fmt.Errorf("%w: shipping address cannot be changed in status %s", ErrInvalidOrderState, s)
	}
	return nil
}

// Pay transitions the status to Paid.
// The only valid source status is Pending.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return 0, fmt.Errorf("%w: cannot pay from status %s", ErrInvalidOrderState, s)
	}
	return Paid, nil
}

// Ship transitions the status to Shipped.
// The only valid source status is Paid.
func (s Status) Ship() (Status, error) {
	if s != Paid {
		return 0, fmt.Errorf("%w: cannot ship from status %s", ErrInvalidOrderState, s)
	}
	return Shipped, nil
}

// Deliver transitions the status to Delivered.
// The only valid source status is Shipped.
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return 0, fmt.Errorf("%w: cannot deliver from status %s", ErrInvalidOrderState, s)
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
// Valid source statuses are Pending and Paid; shipped or completed orders
// cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Paid {
		return 0, fmt.Errorf("%w: cannot cancel from status %s", ErrInvalidOrderState, s)
	}
	return Cancelled, nil
}
