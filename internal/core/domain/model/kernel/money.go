package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Money is a monetary amount in minor currency units (cents).
// It is a value object: arithmetic returns new values and never mutates.
// The zero value represents zero money and is valid.
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in cents.
// Negative amounts are rejected: the domain never deals in negative money,
// refunds and voids are modeled as separate operations.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%d is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in minor currency units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Multiply returns the amount scaled by a non-negative factor.
// Negative factors are clamped to zero to preserve the non-negative invariant.
func (m Money) Multiply(n int) Money {
	if n <= 0 {
		return Money{}
	}
	return Money{cents: m.cents * int64(n)}
}

// GreaterOrEqual reports whether m covers other.
func (m Money) GreaterOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
