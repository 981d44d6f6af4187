package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount, currencyCode string) kernel.Money {
	t.Helper()
	currency, err := kernel.NewCurrency(currencyCode)
	require.NoError(t, err)
	money, err := kernel.NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return money
}

func mustAddress(t *testing.T) kernel.ShippingAddress {
	t.Helper()
	address, err := kernel.NewShippingAddress("221B Baker Street", "London", "NW1 6XE", "UK")
	require.NoError(t, err)
	return address
}

func singleItem(t *testing.T, amount string, quantity int) []order.ItemData {
	t.Helper()
	return []order.ItemData{
		{ProductID: kernel.NewUUID(), Quantity: quantity, PricePerUnit: mustMoney(t, amount, "EUR")},
	}
}

func newPendingOrder(t *testing.T, items []order.ItemData, opts ...order.Option) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), mustAddress(t), items, opts...)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomerID := kernel.NewUUID()

	t.Run("should create pending order and compute total", func(t *testing.T) {
		items := []order.ItemData{
			{ProductID: kernel.NewUUID(), Quantity: 2, PricePerUnit: mustMoney(t, "10.00", "EUR")},
			{ProductID: kernel.NewUUID(), Quantity: 1, PricePerUnit: mustMoney(t, "5.50", "EUR")},
		}

		o, err := order.NewOrder(validID, validCustomerID, mustAddress(t), items)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.CustomerID().IsEqual(validCustomerID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.Items(), 2)
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "25.50", "EUR")))
		assert.Equal(t, 1, o.Version())
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
	})

	t.Run("should record a single creation event", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		events := o.UncommittedEvents()

		require.Len(t, events, 1)
		created, ok := events[0].(order.OrderCreatedEvent)
		require.True(t, ok)
		assert.True(t, created.AggregateID().IsEqual(o.ID()))
		assert.True(t, created.TotalAmount().IsEqual(o.TotalAmount()))
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(validID, validCustomerID, mustAddress(t), nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, invalidID, mustAddress(t), singleItem(t, "10.00", 1))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID")
	})

	t.Run("should fail with mixed currencies", func(t *testing.T) {
		items := []order.ItemData{
			{ProductID: kernel.NewUUID(), Quantity: 1, PricePerUnit: mustMoney(t, "10.00", "EUR")},
			{ProductID: kernel.NewUUID(), Quantity: 1, PricePerUnit: mustMoney(t, "10.00", "USD")},
		}

		o, err := order.NewOrder(validID, validCustomerID, mustAddress(t), items)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("should fail above the item limit", func(t *testing.T) {
		items := make([]order.ItemData, 0, order.MaxItemsPerOrder+1)
		for range order.MaxItemsPerOrder + 1 {
			items = append(items, singleItem(t, "1.00", 1)...)
		}

		o, err := order.NewOrder(validID, validCustomerID, mustAddress(t), items)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass for constructed order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		require.NoError(t, o.Validate())
	})

	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should add item, recompute total, and bump version", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 2))
		versionBefore := o.Version()

		err := o.AddItem(kernel.NewUUID(), 3, mustMoney(t, "2.50", "EUR"))

		require.NoError(t, err)
		assert.Len(t, o.Items(), 2)
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "27.50", "EUR")))
		assert.Equal(t, versionBefore+1, o.Version())
	})

	t.Run("should record item added event with fixed price", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		o.ClearUncommittedEvents()
		price := mustMoney(t, "4.20", "EUR")
		productID := kernel.NewUUID()

		require.NoError(t, o.AddItem(productID, 2, price))

		events := o.UncommittedEvents()
		require.Len(t, events, 1)
		added, ok := events[0].(order.OrderItemAddedEvent)
		require.True(t, ok)
		assert.True(t, added.ProductID().IsEqual(productID))
		assert.Equal(t, 2, added.Quantity())
		assert.True(t, added.PricePerUnit().IsEqual(price))
	})

	t.Run("should reject currency mismatch before changing state", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		totalBefore := o.TotalAmount()

		err := o.AddItem(kernel.NewUUID(), 1, mustMoney(t, "5.00", "USD"))

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.TotalAmount().IsEqual(totalBefore))
	})

	t.Run("should reject quantity out of range", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		require.ErrorIs(t, o.AddItem(kernel.NewUUID(), 0, mustMoney(t, "1.00", "EUR")), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, o.AddItem(kernel.NewUUID(), order.MaxQuantityPerItem+1, mustMoney(t, "1.00", "EUR")), errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject item beyond the limit", func(t *testing.T) {
		items := make([]order.ItemData, 0, order.MaxItemsPerOrder)
		for range order.MaxItemsPerOrder {
			items = append(items, singleItem(t, "1.00", 1)...)
		}
		o := newPendingOrder(t, items)

		err := o.AddItem(kernel.NewUUID(), 1, mustMoney(t, "1.00", "EUR"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject adding to non-pending order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.Pay())

		err := o.AddItem(kernel.NewUUID(), 1, mustMoney(t, "1.00", "EUR"))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	t.Run("should remove item and recompute total", func(t *testing.T) {
		o := newPendingOrder(t, []order.ItemData{
			{ProductID: kernel.NewUUID(), Quantity: 1, PricePerUnit: mustMoney(t, "10.00", "EUR")},
			{ProductID: kernel.NewUUID(), Quantity: 2, PricePerUnit: mustMoney(t, "3.00", "EUR")},
		})
		itemID := o.Items()[1].ID()
		o.ClearUncommittedEvents()

		err := o.RemoveItem(itemID)

		require.NoError(t, err)
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "10.00", "EUR")))

		events := o.UncommittedEvents()
		require.Len(t, events, 1)
		removed, ok := events[0].(order.OrderItemRemovedEvent)
		require.True(t, ok)
		assert.True(t, removed.ItemID().IsEqual(itemID))
	})

	t.Run("should leave total at zero after removing the last item", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		require.NoError(t, o.RemoveItem(o.Items()[0].ID()))

		assert.Empty(t, o.Items())
		assert.True(t, o.TotalAmount().Amount().IsZero())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		err := o.RemoveItem(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject removal on non-pending order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		itemID := o.Items()[0].ID()
		require.NoError(t, o.Pay())

		err := o.RemoveItem(itemID)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
	})
}

func TestOrder_UpdateItemQuantity(t *testing.T) {
	t.Run("should update quantity and recompute total", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		itemID := o.Items()[0].ID()

		err := o.UpdateItemQuantity(itemID, 4)

		require.NoError(t, err)
		assert.Equal(t, 4, o.Items()[0].Quantity())
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "40.00", "EUR")))
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 2))
		itemID := o.Items()[0].ID()

		err := o.UpdateItemQuantity(itemID, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 2, o.Items()[0].Quantity())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		err := o.UpdateItemQuantity(kernel.NewUUID(), 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject update on non-pending order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		itemID := o.Items()[0].ID()
		require.NoError(t, o.Pay())

		err := o.UpdateItemQuantity(itemID, 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
	})
}

func TestOrder_ChangeShippingAddress(t *testing.T) {
	newAddr := func(t *testing.T) kernel.ShippingAddress {
		t.Helper()
		address, err := kernel.NewShippingAddress("742 Evergreen Terrace", "Springfield", "80085", "US")
		require.NoError(t, err)
		return address
	}

	t.Run("should replace address while pending", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		o.ClearUncommittedEvents()
		replacement := newAddr(t)

		err := o.ChangeShippingAddress(replacement)

		require.NoError(t, err)
		assert.True(t, o.ShippingAddress().IsEqual(replacement))

		events := o.UncommittedEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(order.ShippingAddressChangedEvent)
		require.True(t, ok)
		assert.True(t, changed.NewAddress().IsEqual(replacement))
	})

	t.Run("should replace address while paid", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.Pay())

		err := o.ChangeShippingAddress(newAddr(t))

		require.NoError(t, err)
	})

	t.Run("should reject change after shipment", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.Pay())
		require.NoError(t, o.Ship())

		err := o.ChangeShippingAddress(newAddr(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
	})

	t.Run("should reject unconstructed address", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		var invalid kernel.ShippingAddress

		err := o.ChangeShippingAddress(invalid)

		require.Error(t, err)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should walk the happy path to delivered", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		require.NoError(t, o.Pay())
		assert.Equal(t, order.Paid, o.Status())

		require.NoError(t, o.Ship())
		assert.Equal(t, order.Shipped, o.Status())

		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should record status changed events in order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		o.ClearUncommittedEvents()

		require.NoError(t, o.Pay())
		require.NoError(t, o.Ship())

		events := o.UncommittedEvents()
		require.Len(t, events, 2)

		first, ok := events[0].(order.OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, order.Pending, first.From())
		assert.Equal(t, order.Paid, first.To())

		second, ok := events[1].(order.OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, order.Paid, second.From())
		assert.Equal(t, order.Shipped, second.To())
	})

	t.Run("should not pay an emptied order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.RemoveItem(o.Items()[0].ID()))

		err := o.Pay()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrEmptyOrder)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should not ship twice", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.Pay())
		require.NoError(t, o.Ship())

		err := o.Ship()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("should cancel pending and paid orders", func(t *testing.T) {
		pending := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, pending.Cancel())
		assert.Equal(t, order.Cancelled, pending.Status())

		paid := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, paid.Pay())
		require.NoError(t, paid.Cancel())
		assert.Equal(t, order.Cancelled, paid.Status())
	})

	t.Run("should not cancel a delivered order", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.Pay())
		require.NoError(t, o.Ship())
		require.NoError(t, o.Deliver())

		err := o.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidOrderState)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should keep a cancelled order readable but immutable", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.Cancel())

		assert.ErrorIs(t, o.Pay(), order.ErrInvalidOrderState)
		assert.ErrorIs(t, o.AddItem(kernel.NewUUID(), 1, mustMoney(t, "1.00", "EUR")), order.ErrInvalidOrderState)
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "10.00", "EUR")))
	})
}

func TestOrder_Events(t *testing.T) {
	t.Run("should buffer events until cleared", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, o.AddItem(kernel.NewUUID(), 1, mustMoney(t, "5.00", "EUR")))
		require.NoError(t, o.Pay())

		require.Len(t, o.UncommittedEvents(), 3)

		o.ClearUncommittedEvents()

		assert.Empty(t, o.UncommittedEvents())
	})

	t.Run("should return a defensive copy of the buffer", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		events := o.UncommittedEvents()
		events[0] = order.NewOrderItemRemovedEvent(o.ID(), kernel.NewUUID())

		fresh := o.UncommittedEvents()
		_, ok := fresh[0].(order.OrderCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("should emit recalculation events only when opted in", func(t *testing.T) {
		plain := newPendingOrder(t, singleItem(t, "10.00", 1))
		require.NoError(t, plain.AddItem(kernel.NewUUID(), 1, mustMoney(t, "5.00", "EUR")))
		for _, event := range plain.UncommittedEvents() {
			_, ok := event.(order.OrderTotalAmountRecalculatedEvent)
			assert.False(t, ok)
		}

		verbose := newPendingOrder(t, singleItem(t, "10.00", 1), order.WithTotalRecalculationEvents())
		verbose.ClearUncommittedEvents()
		require.NoError(t, verbose.AddItem(kernel.NewUUID(), 1, mustMoney(t, "5.00", "EUR")))

		events := verbose.UncommittedEvents()
		require.Len(t, events, 2)
		recalculated, ok := events[1].(order.OrderTotalAmountRecalculatedEvent)
		require.True(t, ok)
		assert.True(t, recalculated.TotalAmount().IsEqual(mustMoney(t, "15.00", "EUR")))
	})
}

func TestOrder_Snapshots(t *testing.T) {
	t.Run("should return item snapshots detached from the aggregate", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 2))

		items := o.Items()
		require.Len(t, items, 1)
		items[0] = nil

		assert.Len(t, o.Items(), 1)
		assert.NotNil(t, o.Items()[0])
	})

	t.Run("should deep copy via Clone", func(t *testing.T) {
		o := newPendingOrder(t, singleItem(t, "10.00", 1))

		copied := o.Clone()
		require.NoError(t, copied.AddItem(kernel.NewUUID(), 1, mustMoney(t, "5.00", "EUR")))

		assert.Len(t, o.Items(), 1)
		assert.Len(t, copied.Items(), 2)
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "10.00", "EUR")))
		assert.True(t, o.IsEqual(copied))
	})
}

func TestRestoreOrder(t *testing.T) {
	currency, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)

	t.Run("should reconstitute without emitting events", func(t *testing.T) {
		createdAt := time.Now().UTC().Add(-time.Hour)
		updatedAt := time.Now().UTC().Add(-time.Minute)
		items := []order.RestoredItemData{
			{
				ID:           kernel.NewUUID(),
				ProductID:    kernel.NewUUID(),
				Quantity:     2,
				PricePerUnit: mustMoney(t, "7.25", "EUR"),
			},
		}

		o, restoreErr := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t),
			order.Paid, currency, items, createdAt, updatedAt, 3,
		)

		require.NoError(t, restoreErr)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, 3, o.Version())
		assert.True(t, o.TotalAmount().IsEqual(mustMoney(t, "14.50", "EUR")))
		assert.True(t, createdAt.Equal(o.CreatedAt()))
		assert.Empty(t, o.UncommittedEvents())
	})

	t.Run("should allow an empty pending order", func(t *testing.T) {
		o, restoreErr := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t),
			order.Pending, currency, nil, time.Now().UTC(), time.Now().UTC(), 2,
		)

		require.NoError(t, restoreErr)
		assert.Empty(t, o.Items())
		assert.True(t, decimal.Zero.Equal(o.TotalAmount().Amount()))
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, restoreErr := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t),
			order.Unknown, currency, nil, time.Now().UTC(), time.Now().UTC(), 1,
		)

		require.Error(t, restoreErr)
	})

	t.Run("should reject non-positive version", func(t *testing.T) {
		_, restoreErr := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t),
			order.Pending, currency, nil, time.Now().UTC(), time.Now().UTC(), 0,
		)

		require.Error(t, restoreErr)
		assert.ErrorIs(t, restoreErr, errs.ErrVersionIsInvalid)
	})
}
