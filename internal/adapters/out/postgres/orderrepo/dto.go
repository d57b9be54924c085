// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items and payments live in child tables keyed by the order ID.
type OrderDTO struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	BranchID   uuid.UUID         `gorm:"type:uuid;index;not null"`
	Status     int               `gorm:"not null"`
	VoidReason string            `gorm:"type:text"`
	Items      []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments   []OrderPaymentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line item row. Line items carry no identity in
// the domain model; the autoincrement ID only preserves insertion order.
type OrderItemDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	Ready          bool      `gorm:"not null"`
}

// TableName specifies the database table name for order item rows.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderPaymentDTO represents one captured payment row.
type OrderPaymentDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	AmountCents int64     `gorm:"not null"`
	Method      string    `gorm:"type:varchar(64);not null"`
	ReceivedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for payment rows.
func (OrderPaymentDTO) TableName() string {
	return "order_payments"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Ready:          item.IsReady(),
		})
	}

	payments := make([]OrderPaymentDTO, 0, len(aggregate.Payments()))
	for _, payment := range aggregate.Payments() {
		payments = append(payments, OrderPaymentDTO{
			OrderID:     orderID,
			AmountCents: payment.Amount().Cents(),
			Method:      payment.Method(),
			ReceivedAt:  payment.ReceivedAt(),
		})
	}

	return OrderDTO{
		ID:         orderID,
		BranchID:   aggregate.BranchID().Bytes(),
		Status:     int(aggregate.Status()),
		VoidReason: aggregate.VoidReason(),
		Items:      items,
		Payments:   payments,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items and payments using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.RestoreItem(itemDTO.Name, itemDTO.Quantity, unitPrice, itemDTO.Ready)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payments := make([]order.Payment, 0, len(dto.Payments))
	for _, paymentDTO := range dto.Payments {
		amount, amountErr := kernel.NewMoney(paymentDTO.AmountCents)
		if amountErr != nil {
			return nil, amountErr
		}

		payment, paymentErr := order.NewPayment(amount, paymentDTO.Method, paymentDTO.ReceivedAt)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, payment)
	}

	return order.RestoreOrder(id, branchID, items, payments, order.Status(dto.Status), dto.VoidReason)
}
