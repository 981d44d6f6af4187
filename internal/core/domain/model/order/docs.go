// Package order implements the Order aggregate: the root entity, its locally
// owned OrderItem entities, the status state machine, and the domain events
// emitted on state transitions.
//
// Order is the single entry point for all mutations. Items are created and
// changed only through aggregate methods, the total amount is recomputed on
// every mutation, and events accumulate in an aggregate-private buffer until
// the application layer publishes and clears them.
package order
