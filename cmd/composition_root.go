package cmd

import (
	"context"
	"log/slog"

	"ordering/internal/adapters/out/eventbus"
	"ordering/internal/adapters/out/inmemory"
	"ordering/internal/adapters/out/inmemory/orderrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/jobs"
)

// CompositionRoot wires the application together: the shared in-memory store,
// the unit of work factory on top of it, the event dispatcher, and the
// command/query handlers. Query handlers read from the same store the command
// side commits into.
type CompositionRoot struct {
	config     Config
	store      *orderrepo.Repository
	uowFactory *inmemory.UnitOfWorkFactory
	dispatcher *eventbus.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph and subscribes the default event
// consumers.
func NewCompositionRoot(config Config, logger *slog.Logger) CompositionRoot {
	store := orderrepo.NewRepository()
	root := CompositionRoot{
		config:     config,
		store:      store,
		uowFactory: inmemory.NewUnitOfWorkFactory(store),
		dispatcher: eventbus.NewDispatcher(logger),
		logger:     logger,
	}

	root.subscribeEventLogging()
	return root
}

// Dispatcher exposes the event bus so callers can subscribe additional
// consumers before the application starts.
func (c *CompositionRoot) Dispatcher() *eventbus.Dispatcher {
	return c.dispatcher
}

// subscribeEventLogging attaches a log consumer for every known event so the
// order lifecycle is observable out of the box.
func (c *CompositionRoot) subscribeEventLogging() {
	eventLogger := c.logger.With("component", "order_events")
	logEvent := func(ctx context.Context, event order.DomainEvent) error {
		eventLogger.InfoContext(ctx, "Domain event",
			"event", event.EventName(),
			"orderId", event.AggregateID().String(),
		)
		return nil
	}

	for _, name := range []string{
		order.OrderCreatedEventName,
		order.OrderItemAddedEventName,
		order.OrderItemRemovedEventName,
		order.OrderStatusChangedEventName,
		order.ShippingAddressChangedEventName,
		order.OrderTotalAmountRecalculatedEventName,
	} {
		c.dispatcher.Subscribe(name, logEvent)
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	return commands.NewAddItemCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateItemQuantityCommandHandler() commands.UpdateItemQuantityCommandHandler {
	return commands.NewUpdateItemQuantityCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeShippingAddressCommandHandler() commands.ChangeShippingAddressCommandHandler {
	return commands.NewChangeShippingAddressCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.store)
}

// CreateJobManager wires the background jobs with their handlers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelStaleOrdersCommandHandler(),
		c.config.StaleOrderMaxAge,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// FuncOrderUoWFactory adapts a closure to the commands.OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
