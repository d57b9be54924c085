package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrItemNameIsRequired is returned when an item is created without a name.
	ErrItemNameIsRequired = errors.New("item name is required")
)

const maxItemQuantity = 99

// Item is a single order line: a menu position, a quantity, and the unit
// price captured at ordering time. The ready flag is flipped by the kitchen
// once the line is prepared.
//
// Item is a value object owned by the Order aggregate; it is created via
// NewItem and never mutated outside the aggregate.
type Item struct {
	name      string
	quantity  int
	unitPrice kernel.Money
	ready     bool
}

// NewItem creates an order line with validation.
// The name must be non-empty and quantity must be between 1 and 99.
func NewItem(name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if name == "" {
		return Item{}, ErrItemNameIsRequired
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// RestoreItem reconstructs an item from persistence, including its ready flag.
func RestoreItem(name string, quantity int, unitPrice kernel.Money, ready bool) (Item, error) {
	item, err := NewItem(name, quantity, unitPrice)
	if err != nil {
		return Item{}, err
	}
	item.ready = ready
	return item, nil
}

// Name returns the menu position name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit captured at ordering time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// IsReady reports whether the kitchen has prepared this line.
func (i Item) IsReady() bool {
	return i.ready
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}
