package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAllowedTransitionsQueryHandler answers which statuses an order can move
// to next. Reads the current status from the database and consults the
// lifecycle machine's rule coverage.
type GetAllowedTransitionsQueryHandler struct {
	db      *gorm.DB
	machine services.Machine
}

// NewGetAllowedTransitionsQueryHandler creates a handler for reachable-status queries.
func NewGetAllowedTransitionsQueryHandler(
	db *gorm.DB,
	machine services.Machine,
) GetAllowedTransitionsQueryHandler {
	return GetAllowedTransitionsQueryHandler{db: db, machine: machine}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// does not exist. Terminal statuses produce an empty list.
func (h GetAllowedTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetAllowedTransitionsQuery,
) (GetAllowedTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	var status int
	row := h.db.WithContext(ctx).Raw(`
		SELECT status FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetAllowedTransitionsQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetAllowedTransitionsQueryResponse{}, err
	}

	current := order.Status(status)
	targets := h.machine.AllowedTransitions(current)

	allowed := make([]string, 0, len(targets))
	for _, target := range targets {
		allowed = append(allowed, target.String())
	}

	return GetAllowedTransitionsQueryResponse{
		OrderID:       query.OrderID(),
		CurrentStatus: current.String(),
		Allowed:       allowed,
	}, nil
}
