package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrPaymentAmountIsRequired is returned when a payment carries no amount.
	ErrPaymentAmountIsRequired = errors.New("payment amount must be greater than zero")
	// ErrPaymentMethodIsRequired is returned when a payment carries no method.
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// Payment is a single tender against an order: amount, method, and the time
// it was taken. Payments are append-only; corrections are modeled as voids
// at the order level, never by editing a recorded payment.
type Payment struct {
	amount     kernel.Money
	method     string
	receivedAt time.Time
}

// NewPayment creates a payment with validation.
// The amount must be positive and the method (cash, card, ...) non-empty.
func NewPayment(amount kernel.Money, method string, receivedAt time.Time) (Payment, error) {
	if amount.IsZero() {
		return Payment{}, ErrPaymentAmountIsRequired
	}
	if method == "" {
		return Payment{}, ErrPaymentMethodIsRequired
	}

	return Payment{
		amount:     amount,
		method:     method,
		receivedAt: receivedAt.UTC(),
	}, nil
}

// Amount returns the tendered amount.
func (p Payment) Amount() kernel.Money {
	return p.amount
}

// Method returns the tender method.
func (p Payment) Method() string {
	return p.method
}

// ReceivedAt returns when the payment was taken, in UTC.
func (p Payment) ReceivedAt() time.Time {
	return p.receivedAt
}
