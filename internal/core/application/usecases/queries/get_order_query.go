package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its items, payments, and
// running totals.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s, %d items\n", resp.ID, resp.Status, len(resp.Items))
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse represents a read-model view of one order.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	BranchID   kernel.UUID
	Status     string
	VoidReason string
	TotalCents int64
	PaidCents  int64
	Items      []OrderItemResponse
	Payments   []OrderPaymentResponse
}

// OrderItemResponse represents one line item in the order view.
type OrderItemResponse struct {
	Name           string
	Quantity       int
	UnitPriceCents int64
	Ready          bool
}

// OrderPaymentResponse represents one captured payment in the order view.
type OrderPaymentResponse struct {
	AmountCents int64
	Method      string
}
