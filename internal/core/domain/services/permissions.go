package services

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/order"

	"orderflow/internal/pkg/errs"
)

// ErrOperationNotPermitted marks a well-formed request refused because of the
// order's current status. Boundaries distinguish it from malformed input: the
// request made sense, the order's state forbids it.
var ErrOperationNotPermitted = errors.New("operation not permitted in current order status")

// Operation names accepted by ValidateOperation. Handlers use these
// constants so the user-visible message and the permission check cannot
// drift apart.
const (
	OperationEditItems       = "edit items"
	OperationSend            = "send"
	OperationRegisterPayment = "register payment"
	OperationVoid            = "void"
	OperationApplyDiscount   = "apply discount"
)

// Permission predicates are explicit status whitelists, deliberately not
// derived from the transition table: "may edit items" is a statement about a
// status, not about a transition.

// CanEditItems reports whether order lines may be added or changed.
// Editing is allowed only before the order reaches the kitchen.
func CanEditItems(status order.Status) bool {
	return status == order.New
}

// CanSend reports whether the order may be sent to the kitchen.
func CanSend(status order.Status) bool {
	return status == order.New
}

// CanPay reports whether payments may be registered.
// Payment is taken once the food is ready or already on the table.
func CanPay(status order.Status) bool {
	return status == order.Ready || status == order.Served
}

// CanVoid reports whether the order may still be voided.
func CanVoid(status order.Status) bool {
	return status == order.New || status == order.Sent || status == order.InKitchen
}

// CanDiscount reports whether a discount may be applied.
func CanDiscount(status order.Status) bool {
	return status == order.New || status == order.Sent
}

var operationPredicates = map[string]func(order.Status) bool{
	OperationEditItems:       CanEditItems,
	OperationSend:            CanSend,
	OperationRegisterPayment: CanPay,
	OperationVoid:            CanVoid,
	OperationApplyDiscount:   CanDiscount,
}

// ValidateOperation is the service-boundary helper that converts a false
// permission predicate into a caller-visible error naming the operation and
// the blocking status. It is the only place in this package that raises an
// error for an expected rejection.
func ValidateOperation(operation string, current order.Status) error {
	predicate, ok := operationPredicates[operation]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"operation",
			fmt.Errorf("%q is not a known order operation", operation),
		)
	}

	if !predicate(current) {
		return fmt.Errorf("%w: cannot %s while order is %s", ErrOperationNotPermitted, operation, current)
	}

	return nil
}
