// Package kernel provides core domain primitives shared across the ordering
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Money: a non-negative monetary amount in a single currency
//   - ShippingAddress: a postal address value object
//
// These primitives enforce domain invariants at construction time, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
