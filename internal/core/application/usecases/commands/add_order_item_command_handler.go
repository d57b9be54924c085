package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// AddOrderItemCommandHandler handles adding line items to open orders.
// Editing is refused once the order has been sent to the kitchen.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddOrderItemCommandHandler creates a handler for item editing operations.
func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add item command.
// Loads the order, checks that items may still be edited in its current
// status, and persists the updated aggregate.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unitPrice, err := kernel.NewMoney(cmd.UnitPriceCents())
	if err != nil {
		return err
	}

	item, err := order.NewItem(cmd.Name(), cmd.Quantity(), unitPrice)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = services.ValidateOperation(services.OperationEditItems, aggregate.Status()); err != nil {
		return err
	}

	aggregate.AddItem(item)

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
