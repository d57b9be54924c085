package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Whether the move is allowed is decided by the lifecycle
// machine at handling time, not here: the constructor only checks that the
// request is well formed.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Voided, actorID, "customer left", true)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	decision, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if !decision.IsApproved() {
//	    fmt.Println("refused:", decision.Reason())
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	newStatus       order.Status
	actorID         kernel.UUID
	reason          string
	managerApproved bool

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move an order to newStatus.
// Validates that the order ID, the requested status, and the actor ID are
// valid. The reason may be empty; rules that require one reject the
// transition when it is missing.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	actorID kernel.UUID,
	reason string,
	managerApproved bool,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		reason:          reason,
		managerApproved: managerApproved,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setNewStatus(newStatus),
		statusCommand.setActorID(actorID),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being transitioned.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested target status.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ActorID returns the staff member requesting the transition.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the operator-entered explanation, if any.
func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

// ManagerApproved reports whether a manager signed off on the request.
func (c ChangeOrderStatusCommand) ManagerApproved() bool {
	return c.managerApproved
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
