package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// Downstream side-effect collaborators triggered by approved transitions.
// They are consumed as black boxes: each collaborator's internal idempotency
// is its own responsibility, this core only deduplicates the outer request.

// KitchenNotifier creates kitchen tickets when an order is sent to or
// acknowledged by the kitchen.
type KitchenNotifier interface {
	CreateTicket(ctx context.Context, aggregate *order.Order) error
}

// PaymentPoster posts captured payments to the ledger when an order closes.
type PaymentPoster interface {
	PostPayments(ctx context.Context, aggregate *order.Order) error
}

// InventoryConsumer triggers FIFO stock consumption when an order closes.
type InventoryConsumer interface {
	ConsumeForOrder(ctx context.Context, aggregate *order.Order) error
}
