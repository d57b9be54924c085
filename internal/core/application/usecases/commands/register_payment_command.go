package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRegisterPaymentCommandIsNotConstructed = errors.New(
	"RegisterPaymentCommand must be created via NewRegisterPaymentCommand constructor",
)

// RegisterPaymentCommand represents a request to record a captured payment
// against an order. Payments accumulate until they cover the order total,
// which is what allows the order to close.
type RegisterPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	amountCents int64
	method      string

	guard guard.ConstructorGuard
}

// NewRegisterPaymentCommand creates a command to record a payment.
// Validates that the order ID is valid, the amount is positive, and the
// payment method is not empty.
func NewRegisterPaymentCommand(
	orderID kernel.UUID,
	amountCents int64,
	method string,
) (RegisterPaymentCommand, error) {
	paymentCommand := RegisterPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentCommand.setOrderID(orderID),
		paymentCommand.setAmountCents(amountCents),
		paymentCommand.setMethod(method),
	); err != nil {
		return RegisterPaymentCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment applies to.
func (c RegisterPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AmountCents returns the captured amount in cents.
func (c RegisterPaymentCommand) AmountCents() int64 {
	return c.amountCents
}

// Method returns the payment method label (cash, card, voucher).
func (c RegisterPaymentCommand) Method() string {
	return c.method
}

func (c *RegisterPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RegisterPaymentCommand) setAmountCents(amountCents int64) error {
	if amountCents <= 0 {
		return errs.NewValueIsInvalidError("amountCents")
	}

	c.amountCents = amountCents
	return nil
}

func (c *RegisterPaymentCommand) setMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("method")
	}

	c.method = method
	return nil
}
