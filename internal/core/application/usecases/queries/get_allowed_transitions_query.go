// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return read models, bypassing
// the domain aggregates used by the write side.
package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetAllowedTransitionsQueryIsNotConstructed = errors.New(
	"GetAllowedTransitionsQuery must be created via NewGetAllowedTransitionsQuery constructor",
)

// GetAllowedTransitionsQuery retrieves the statuses an order may move to from
// its current status. The answer reflects rule coverage only; a listed target
// can still be refused at transition time when its conditions do not hold.
type GetAllowedTransitionsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAllowedTransitionsQuery creates a query for an order's reachable statuses.
func NewGetAllowedTransitionsQuery(orderID kernel.UUID) (GetAllowedTransitionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAllowedTransitionsQuery{}, err
	}

	return GetAllowedTransitionsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllowedTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedTransitionsQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetAllowedTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetAllowedTransitionsQueryResponse lists the order's current status and the
// statuses the lifecycle rules may move it to.
type GetAllowedTransitionsQueryResponse struct {
	OrderID       kernel.UUID
	CurrentStatus string
	Allowed       []string
}
