package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func mustItem(t *testing.T, name string, qty int, cents int64) order.Item {
	t.Helper()
	item, err := order.NewItem(name, qty, mustMoney(t, cents))
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_empty_order_in_new_status", func(t *testing.T) {
		id := kernel.NewUUID()
		branchID := kernel.NewUUID()

		o, err := order.NewOrder(id, branchID)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.New, o.Status())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.BranchID().IsEqual(branchID))
		assert.False(t, o.HasItems())
		assert.Empty(t, o.Items())
		assert.Empty(t, o.Payments())
	})

	t.Run("rejects_zero_value_identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := order.NewOrder(zero, kernel.NewUUID())
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), zero)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("rejects_direct_struct_initialization", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("rejects_nil_order", func(t *testing.T) {
		var o *order.Order

		require.Error(t, o.Validate())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		id := kernel.NewUUID()
		branchID := kernel.NewUUID()
		items := []order.Item{mustItem(t, "Margherita", 2, 4500)}
		payment, err := order.NewPayment(mustMoney(t, 9000), "cash", time.Now())
		require.NoError(t, err)

		o, err := order.RestoreOrder(id, branchID, items, []order.Payment{payment}, order.Served, "")

		require.NoError(t, err)
		assert.Equal(t, order.Served, o.Status())
		assert.Len(t, o.Items(), 1)
		assert.Len(t, o.Payments(), 1)
		assert.True(t, o.IsPaid())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), nil, nil, order.Unknown, "")

		require.Error(t, err)
	})
}

func TestOrder_Items(t *testing.T) {
	t.Run("add_item_appends", func(t *testing.T) {
		o := newTestOrder(t)

		o.AddItem(mustItem(t, "Espresso", 1, 350))
		o.AddItem(mustItem(t, "Croissant", 2, 420))

		assert.True(t, o.HasItems())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, int64(350+2*420), o.Total().Cents())
	})

	t.Run("items_returns_copy", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Espresso", 1, 350))

		items := o.Items()
		items[0] = order.Item{}

		assert.Equal(t, "Espresso", o.Items()[0].Name())
	})
}

func TestOrder_Readiness(t *testing.T) {
	t.Run("empty_order_is_never_ready", func(t *testing.T) {
		o := newTestOrder(t)

		assert.False(t, o.AllItemsReady())
	})

	t.Run("fresh_items_are_not_ready", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Espresso", 1, 350))

		assert.False(t, o.AllItemsReady())
	})

	t.Run("mark_all_items_ready", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Espresso", 1, 350))
		o.AddItem(mustItem(t, "Croissant", 1, 420))

		o.MarkAllItemsReady()

		assert.True(t, o.AllItemsReady())
		for _, item := range o.Items() {
			assert.True(t, item.IsReady())
		}
	})
}

func TestOrder_Payments(t *testing.T) {
	t.Run("underpaid_order_is_not_paid", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Steak", 1, 10000))

		payment, err := order.NewPayment(mustMoney(t, 8000), "card", time.Now())
		require.NoError(t, err)
		o.RegisterPayment(payment)

		assert.Equal(t, int64(8000), o.PaidTotal().Cents())
		assert.False(t, o.IsPaid())
	})

	t.Run("fully_paid_order_is_paid", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Steak", 1, 10000))

		payment, err := order.NewPayment(mustMoney(t, 10000), "card", time.Now())
		require.NoError(t, err)
		o.RegisterPayment(payment)

		assert.True(t, o.IsPaid())
	})

	t.Run("split_payments_accumulate", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Steak", 1, 10000))

		first, err := order.NewPayment(mustMoney(t, 6000), "card", time.Now())
		require.NoError(t, err)
		second, err := order.NewPayment(mustMoney(t, 4000), "cash", time.Now())
		require.NoError(t, err)
		o.RegisterPayment(first)
		o.RegisterPayment(second)

		assert.True(t, o.IsPaid())
		assert.Len(t, o.Payments(), 2)
	})
}

func TestOrder_ApplyStatus(t *testing.T) {
	t.Run("applies_approved_status", func(t *testing.T) {
		o := newTestOrder(t)
		o.AddItem(mustItem(t, "Espresso", 1, 350))

		require.NoError(t, o.ApplyStatus(order.Sent, ""))

		assert.Equal(t, order.Sent, o.Status())
		assert.Empty(t, o.VoidReason())
	})

	t.Run("records_void_reason", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ApplyStatus(order.Voided, "customer walked out"))

		assert.Equal(t, order.Voided, o.Status())
		assert.Equal(t, "customer walked out", o.VoidReason())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.ApplyStatus(order.Unknown, ""))
		assert.Equal(t, order.New, o.Status())
	})
}

func TestNewItem(t *testing.T) {
	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := order.NewItem("", 1, mustMoney(t, 100))

		require.ErrorIs(t, err, order.ErrItemNameIsRequired)
	})

	t.Run("rejects_out_of_range_quantity", func(t *testing.T) {
		_, err := order.NewItem("Espresso", 0, mustMoney(t, 100))
		require.Error(t, err)

		_, err = order.NewItem("Espresso", 100, mustMoney(t, 100))
		require.Error(t, err)
	})
}

func TestNewPayment(t *testing.T) {
	t.Run("rejects_zero_amount", func(t *testing.T) {
		_, err := order.NewPayment(kernel.Money{}, "cash", time.Now())

		require.ErrorIs(t, err, order.ErrPaymentAmountIsRequired)
	})

	t.Run("rejects_empty_method", func(t *testing.T) {
		_, err := order.NewPayment(mustMoney(t, 100), "", time.Now())

		require.ErrorIs(t, err, order.ErrPaymentMethodIsRequired)
	})

	t.Run("normalizes_received_time_to_utc", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		payment, err := order.NewPayment(mustMoney(t, 100), "cash", time.Date(2025, 6, 1, 12, 0, 0, 0, loc))

		require.NoError(t, err)
		assert.Equal(t, time.UTC, payment.ReceivedAt().Location())
	})
}
