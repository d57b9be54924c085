package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves order read models from the database.
// Bypasses the domain aggregate and reads the tables directly.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query, assembling the order row with its items and
// payments. Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse

	var id, branchID uuid.UUID
	var status int
	var voidReason string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			branch_id,
			status,
			void_reason
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&id, &branchID, &status, &voidReason); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	branchUUID, err := kernel.UUIDFromBytes(branchID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = orderID
	resp.BranchID = branchUUID
	resp.Status = order.Status(status).String()
	resp.VoidReason = voidReason

	if err = h.loadItems(ctx, &resp); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.loadPayments(ctx, &resp); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, resp *GetOrderQueryResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			quantity,
			unit_price_cents,
			ready
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, resp.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		if err = rows.Scan(&item.Name, &item.Quantity, &item.UnitPriceCents, &item.Ready); err != nil {
			return err
		}

		resp.TotalCents += item.UnitPriceCents * int64(item.Quantity)
		resp.Items = append(resp.Items, item)
	}

	return rows.Err()
}

func (h GetOrderQueryHandler) loadPayments(ctx context.Context, resp *GetOrderQueryResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			amount_cents,
			method
		FROM order_payments
		WHERE order_id = ?
		ORDER BY id
	`, resp.ID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var payment OrderPaymentResponse
		if err = rows.Scan(&payment.AmountCents, &payment.Method); err != nil {
			return err
		}

		resp.PaidCents += payment.AmountCents
		resp.Payments = append(resp.Payments, payment)
	}

	return rows.Err()
}
