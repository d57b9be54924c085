// Package audit contains the audit record entity written for every approved
// lifecycle transition. Records answer "who moved which order from what to
// what, when, and under which action label" for compliance review.
package audit

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record was not created
	// through NewRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
)

// Record is one immutable audit trail entry. IDs are ULIDs so the trail
// sorts chronologically by primary key without a separate sequence.
type Record struct {
	id         string
	action     string
	orderID    kernel.UUID
	oldStatus  order.Status
	newStatus  order.Status
	actorID    kernel.UUID
	branchID   kernel.UUID
	occurredAt time.Time
	metadata   map[string]string

	isConstructed bool
}

// NewRecord creates an audit entry for an approved transition.
// The action label comes from the lifecycle rule that approved the
// transition; metadata carries free-form context such as the void reason.
func NewRecord(
	action string,
	orderID kernel.UUID,
	oldStatus order.Status,
	newStatus order.Status,
	actorID kernel.UUID,
	branchID kernel.UUID,
	occurredAt time.Time,
	metadata map[string]string,
) (*Record, error) {
	if action == "" {
		return nil, errs.NewValueIsRequiredError("audit action")
	}
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		branchID.Validate(),
		oldStatus.Validate(),
		newStatus.Validate(),
	); err != nil {
		return nil, err
	}

	copied := make(map[string]string, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}

	return &Record{
		id:            ulid.Make().String(),
		action:        action,
		orderID:       orderID,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		actorID:       actorID,
		branchID:      branchID,
		occurredAt:    occurredAt.UTC(),
		metadata:      copied,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record was created through NewRecord.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the ULID identifier of the entry.
func (r *Record) ID() string {
	return r.id
}

// Action returns the audit action label.
func (r *Record) Action() string {
	return r.action
}

// OrderID returns the order the transition applied to.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// OldStatus returns the status before the transition.
func (r *Record) OldStatus() order.Status {
	return r.oldStatus
}

// NewStatus returns the status after the transition.
func (r *Record) NewStatus() order.Status {
	return r.newStatus
}

// ActorID returns the staff member who requested the transition.
func (r *Record) ActorID() kernel.UUID {
	return r.actorID
}

// BranchID returns the branch the order belongs to.
func (r *Record) BranchID() kernel.UUID {
	return r.branchID
}

// OccurredAt returns when the transition happened, in UTC.
func (r *Record) OccurredAt() time.Time {
	return r.occurredAt
}

// Metadata returns a copy of the free-form context map.
func (r *Record) Metadata() map[string]string {
	copied := make(map[string]string, len(r.metadata))
	for k, v := range r.metadata {
		copied[k] = v
	}
	return copied
}
