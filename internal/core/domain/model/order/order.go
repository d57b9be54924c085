package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a restaurant order on a POS terminal. It is the aggregate
// root owning the order's items and payments and its lifecycle status.
//
// Order follows these invariants:
//   - Must have valid order and branch identifiers
//   - Items and payments are append-only collections
//   - Status is changed only through ApplyStatus after the lifecycle state
//     machine has approved the transition; the aggregate itself does not
//     re-validate transitions
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; mutation goes
// through validated methods.
type Order struct {
	id         kernel.UUID
	branchID   kernel.UUID
	items      []Item
	payments   []Payment
	status     Status
	voidReason string

	isConstructed bool
}

// NewOrder creates a new empty order in New status for the given branch.
// This is the only way to create a valid fresh Order.
func NewOrder(id kernel.UUID, branchID kernel.UUID) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBranchID(branchID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its full state.
// The status must be valid; items and payments are taken as stored.
func RestoreOrder(
	id kernel.UUID,
	branchID kernel.UUID,
	items []Item,
	payments []Payment,
	status Status,
	voidReason string,
) (*Order, error) {
	o, err := NewOrder(id, branchID)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.items = append(o.items, items...)
	o.payments = append(o.payments, payments...)
	o.status = status
	o.voidReason = voidReason
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed if the order was created by direct
// struct initialization.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BranchID returns the branch the order belongs to.
func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Payments returns a copy of the recorded payments.
func (o *Order) Payments() []Payment {
	payments := make([]Payment, len(o.payments))
	copy(payments, o.payments)
	return payments
}

// VoidReason returns the reason recorded when the order was voided,
// or "" if the order has not been voided.
func (o *Order) VoidReason() string {
	return o.voidReason
}

// AddItem appends a line to the order.
// The caller is responsible for checking that item editing is permitted in
// the current status; the single source of truth for that is the lifecycle
// state machine's permission predicates.
func (o *Order) AddItem(item Item) {
	o.items = append(o.items, item)
}

// RegisterPayment records a tender against the order.
// As with AddItem, operation permission is checked at the service boundary.
func (o *Order) RegisterPayment(payment Payment) {
	o.payments = append(o.payments, payment)
}

// MarkAllItemsReady flags every line as prepared. Called when the kitchen
// reports the whole ticket done.
func (o *Order) MarkAllItemsReady() {
	for i := range o.items {
		o.items[i].ready = true
	}
}

// ApplyStatus moves the order to an approved target status.
// It must be called only after the lifecycle state machine approved the
// transition; the reason is recorded when the target is Voided.
func (o *Order) ApplyStatus(newStatus Status, reason string) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Voided {
		o.voidReason = reason
	}
	return nil
}

// HasItems reports whether the order carries at least one line.
func (o *Order) HasItems() bool {
	return len(o.items) > 0
}

// AllItemsReady reports whether every line has been prepared.
// An order with no items is never considered ready.
func (o *Order) AllItemsReady() bool {
	if len(o.items) == 0 {
		return false
	}
	for _, item := range o.items {
		if !item.ready {
			return false
		}
	}
	return true
}

// Total returns the sum of all line totals.
func (o *Order) Total() kernel.Money {
	total := kernel.Money{}
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// PaidTotal returns the sum of all recorded payments.
func (o *Order) PaidTotal() kernel.Money {
	total := kernel.Money{}
	for _, payment := range o.payments {
		total = total.Add(payment.Amount())
	}
	return total
}

// IsPaid reports whether recorded payments cover the order total.
func (o *Order) IsPaid() bool {
	return o.PaidTotal().GreaterOrEqual(o.Total())
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	o.branchID = branchID
	return nil
}
