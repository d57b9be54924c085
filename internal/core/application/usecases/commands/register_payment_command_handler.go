package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// RegisterPaymentCommandHandler handles recording captured payments.
// Payments are accepted while the order is ready or served; voided and
// closed orders refuse them.
type RegisterPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewRegisterPaymentCommandHandler creates a handler for payment registration.
func NewRegisterPaymentCommandHandler(uowFactory OrderUoWFactory) RegisterPaymentCommandHandler {
	return RegisterPaymentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the payment registration command.
// Loads the order, checks that its current status accepts payments, and
// persists the updated aggregate.
func (h *RegisterPaymentCommandHandler) Handle(ctx context.Context, cmd RegisterPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	amount, err := kernel.NewMoney(cmd.AmountCents())
	if err != nil {
		return err
	}

	payment, err := order.NewPayment(amount, cmd.Method(), h.now())
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

	if err = services.ValidateOperation(services.OperationRegisterPayment, aggregate.Status()); err != nil {
		return err
	}

	aggregate.RegisterPayment(payment)

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
