package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to interested consumers after the
// originating transaction has committed. Delivery is at-least-once: a failure
// between publish and buffer clearing may replay events, so consumers must be
// idempotent.
type EventPublisher interface {
	// Publish delivers the events in order. Implementations decide how
	// individual handler failures are surfaced.
	Publish(ctx context.Context, events []order.DomainEvent) error
}
