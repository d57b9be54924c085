package services

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// TransitionContext carries the caller-supplied facts a rule needs to decide
// a transition. It is a plain value object assembled fresh per evaluation,
// typically from the order aggregate; the machine never loads anything
// itself.
type TransitionContext struct {
	OrderID         kernel.UUID
	CurrentStatus   order.Status
	RequestedStatus order.Status
	ActorID         kernel.UUID
	BranchID        kernel.UUID

	// Reason is the operator-entered explanation, required by some rules
	// (voids).
	Reason string

	// Situational facts derived from the order's current state.
	HasItems        bool
	AllItemsReady   bool
	IsPaid          bool
	ManagerApproved bool
}

// ContextFromOrder assembles a TransitionContext from an order aggregate.
// Reason and ManagerApproved come from the request, everything else is
// derived from the aggregate.
func ContextFromOrder(o *order.Order, requested order.Status, actorID kernel.UUID, reason string, managerApproved bool) TransitionContext {
	return TransitionContext{
		OrderID:         o.ID(),
		CurrentStatus:   o.Status(),
		RequestedStatus: requested,
		ActorID:         actorID,
		BranchID:        o.BranchID(),
		Reason:          reason,
		HasItems:        o.HasItems(),
		AllItemsReady:   o.AllItemsReady(),
		IsPaid:          o.IsPaid(),
		ManagerApproved: managerApproved,
	}
}
