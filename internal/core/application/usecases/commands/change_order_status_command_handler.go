package commands

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/audit"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies lifecycle transitions to orders.
// Each transition is evaluated by the lifecycle machine; approved transitions
// persist the status change together with an audit record in one transaction
// and then notify downstream collaborators.
type ChangeOrderStatusCommandHandler struct {
	uowFactory        UoWFactory
	machine           services.Machine
	kitchenNotifier   ports.KitchenNotifier
	paymentPoster     ports.PaymentPoster
	inventoryConsumer ports.InventoryConsumer
	now               func() time.Time
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// Collaborators receive side effects on specific approved transitions:
// the kitchen notifier when an order is sent, the payment poster and the
// inventory consumer when an order closes.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	machine services.Machine,
	kitchenNotifier ports.KitchenNotifier,
	paymentPoster ports.PaymentPoster,
	inventoryConsumer ports.InventoryConsumer,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:        uowFactory,
		machine:           machine,
		kitchenNotifier:   kitchenNotifier,
		paymentPoster:     paymentPoster,
		inventoryConsumer: inventoryConsumer,
		now:               time.Now,
	}
}

// Handle evaluates and, when approved, applies the requested transition.
//
// A rejected transition is a normal outcome, not an error: the returned
// Decision carries the human-readable refusal reason and nothing is
// persisted. Errors are reserved for infrastructure failures and missing
// orders.
//
// Collaborator notifications run after the transaction commits. A
// notification failure is returned to the caller but the transition itself
// stays committed; a retry of the same request lands on the same-state
// no-op and does not repeat the side effect.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (services.Decision, error) {
	if err := cmd.Validate(); err != nil {
		return services.Decision{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Decision{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.Decision{}, err
	}

	transitionCtx := services.ContextFromOrder(
		aggregate, cmd.NewStatus(), cmd.ActorID(), cmd.Reason(), cmd.ManagerApproved(),
	)

	decision := h.machine.Evaluate(transitionCtx)
	if !decision.IsApproved() {
		return decision, nil
	}

	// Re-requesting the current status is approved but changes nothing:
	// no write, no audit entry, no side effects.
	if aggregate.Status() == cmd.NewStatus() {
		return decision, nil
	}

	oldStatus := aggregate.Status()
	if err = aggregate.ApplyStatus(cmd.NewStatus(), cmd.Reason()); err != nil {
		return services.Decision{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return services.Decision{}, err
	}

	var metadata map[string]string
	if cmd.Reason() != "" {
		metadata = map[string]string{"reason": cmd.Reason()}
	}

	record, err := audit.NewRecord(
		decision.AuditAction(),
		aggregate.ID(),
		oldStatus,
		aggregate.Status(),
		cmd.ActorID(),
		aggregate.BranchID(),
		h.now().UTC(),
		metadata,
	)
	if err != nil {
		return services.Decision{}, err
	}

	if err = uow.AuditTrail().Append(ctx, record); err != nil {
		return services.Decision{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Decision{}, err
	}

	if err = h.notifyCollaborators(ctx, aggregate); err != nil {
		return decision, err
	}

	return decision, nil
}

func (h *ChangeOrderStatusCommandHandler) notifyCollaborators(
	ctx context.Context,
	aggregate *order.Order,
) error {
	switch aggregate.Status() {
	case order.Sent:
		if err := h.kitchenNotifier.CreateTicket(ctx, aggregate); err != nil {
			return fmt.Errorf("create kitchen ticket: %w", err)
		}
	case order.Closed:
		if err := h.paymentPoster.PostPayments(ctx, aggregate); err != nil {
			return fmt.Errorf("post payments: %w", err)
		}
		if err := h.inventoryConsumer.ConsumeForOrder(ctx, aggregate); err != nil {
			return fmt.Errorf("consume inventory: %w", err)
		}
	}

	return nil
}
