// Package eventbus provides an in-process domain event dispatcher.
// Handlers subscribe by event name and run synchronously in registration
// order. A failing handler is logged and skipped so one consumer cannot block
// delivery to the others; consumers needing stronger guarantees must retry on
// their own.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"ordering/internal/core/domain/model/order"
)

// Handler consumes a single domain event.
type Handler func(ctx context.Context, event order.DomainEvent) error

// Dispatcher routes domain events to subscribed handlers.
// Implements ports.EventPublisher.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher without any subscriptions.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "event_dispatcher"),
	}
}

// Subscribe registers a handler for the given event name.
// Handlers for one event run in the order they were subscribed.
func (d *Dispatcher) Subscribe(eventName string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

// Publish delivers the events sequentially to all subscribed handlers.
// Handler errors are logged and swallowed; Publish itself fails only when the
// context is cancelled.
func (d *Dispatcher) Publish(ctx context.Context, events []order.DomainEvent) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, handler := range d.subscribers(event.EventName()) {
			if err := handler(ctx, event); err != nil {
				d.logger.ErrorContext(ctx, "Event handler failed",
					"event", event.EventName(),
					"eventId", event.EventID().String(),
					"orderId", event.AggregateID().String(),
					"error", err,
				)
			}
		}
	}

	return nil
}

func (d *Dispatcher) subscribers(eventName string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]Handler(nil), d.handlers[eventName]...)
}
