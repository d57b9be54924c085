package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand represents a request to add a line item to an order.
// Items can only be edited while the order is still in the New status.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	name           string
	quantity       int
	unitPriceCents int64

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add a line item to an order.
// Validates that the order ID is valid, the name is not empty, the quantity
// is positive, and the unit price is not negative.
func NewAddOrderItemCommand(
	orderID kernel.UUID,
	name string,
	quantity int,
	unitPriceCents int64,
) (AddOrderItemCommand, error) {
	itemCommand := AddOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setName(name),
		itemCommand.setQuantity(quantity),
		itemCommand.setUnitPriceCents(unitPriceCents),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the order the item is added to.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the menu item name.
func (c AddOrderItemCommand) Name() string {
	return c.name
}

// Quantity returns how many units are ordered.
func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

// UnitPriceCents returns the price of a single unit in cents.
func (c AddOrderItemCommand) UnitPriceCents() int64 {
	return c.unitPriceCents
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *AddOrderItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}

func (c *AddOrderItemCommand) setUnitPriceCents(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidError("unitPriceCents")
	}

	c.unitPriceCents = unitPriceCents
	return nil
}
