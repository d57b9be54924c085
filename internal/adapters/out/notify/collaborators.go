// Package notify provides stand-in implementations of the downstream
// side-effect collaborators. Real deployments replace these with clients for
// the kitchen display, ledger, and inventory systems; the stand-ins log the
// call so the flow stays observable in development.
package notify

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
)

// LogKitchenNotifier logs kitchen ticket creation instead of printing one.
type LogKitchenNotifier struct {
	logger *slog.Logger
}

// NewLogKitchenNotifier creates a logging kitchen notifier.
func NewLogKitchenNotifier(logger *slog.Logger) *LogKitchenNotifier {
	return &LogKitchenNotifier{logger: logger.With("component", "kitchen_notifier")}
}

// CreateTicket logs the ticket that would be sent to the kitchen.
func (n *LogKitchenNotifier) CreateTicket(ctx context.Context, aggregate *order.Order) error {
	n.logger.InfoContext(ctx, "Kitchen ticket created",
		"order_id", aggregate.ID().String(),
		"items", len(aggregate.Items()),
	)
	return nil
}

// LogPaymentPoster logs payment postings instead of writing to a ledger.
type LogPaymentPoster struct {
	logger *slog.Logger
}

// NewLogPaymentPoster creates a logging payment poster.
func NewLogPaymentPoster(logger *slog.Logger) *LogPaymentPoster {
	return &LogPaymentPoster{logger: logger.With("component", "payment_poster")}
}

// PostPayments logs the payments that would be posted to the ledger.
func (p *LogPaymentPoster) PostPayments(ctx context.Context, aggregate *order.Order) error {
	p.logger.InfoContext(ctx, "Payments posted to ledger",
		"order_id", aggregate.ID().String(),
		"payments", len(aggregate.Payments()),
		"paid_total", aggregate.PaidTotal().String(),
	)
	return nil
}

// LogInventoryConsumer logs stock consumption instead of decrementing stock.
type LogInventoryConsumer struct {
	logger *slog.Logger
}

// NewLogInventoryConsumer creates a logging inventory consumer.
func NewLogInventoryConsumer(logger *slog.Logger) *LogInventoryConsumer {
	return &LogInventoryConsumer{logger: logger.With("component", "inventory_consumer")}
}

// ConsumeForOrder logs the stock consumption for a closed order.
func (c *LogInventoryConsumer) ConsumeForOrder(ctx context.Context, aggregate *order.Order) error {
	c.logger.InfoContext(ctx, "Inventory consumed for order",
		"order_id", aggregate.ID().String(),
		"items", len(aggregate.Items()),
	)
	return nil
}
