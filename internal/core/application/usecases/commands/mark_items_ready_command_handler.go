package commands

import (
	"context"
)

// MarkItemsReadyCommandHandler handles the kitchen reporting that an order's
// items are all prepared.
type MarkItemsReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkItemsReadyCommandHandler creates a handler for the kitchen-ready signal.
func NewMarkItemsReadyCommandHandler(uowFactory OrderUoWFactory) MarkItemsReadyCommandHandler {
	return MarkItemsReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command by marking every item on the order as ready
// and persisting the aggregate. Marking an already-ready order again is a
// harmless no-op at the domain level.
func (h *MarkItemsReadyCommandHandler) Handle(ctx context.Context, cmd MarkItemsReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	aggregate.MarkAllItemsReady()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
