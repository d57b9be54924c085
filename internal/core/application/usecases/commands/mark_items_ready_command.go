package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrMarkItemsReadyCommandIsNotConstructed = errors.New(
	"MarkItemsReadyCommand must be created via NewMarkItemsReadyCommand constructor",
)

// MarkItemsReadyCommand represents the kitchen reporting that every item on
// an order has been prepared. Transitions into Ready require this to have
// happened.
type MarkItemsReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkItemsReadyCommand creates a command marking all of an order's items
// as prepared.
func NewMarkItemsReadyCommand(orderID kernel.UUID) (MarkItemsReadyCommand, error) {
	readyCommand := MarkItemsReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := readyCommand.setOrderID(orderID); err != nil {
		return MarkItemsReadyCommand{}, err
	}

	return readyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemsReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemsReadyCommandIsNotConstructed)
}

// OrderID returns the order whose items are prepared.
func (c MarkItemsReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkItemsReadyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
