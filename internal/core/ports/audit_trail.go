package ports

import (
	"context"

	"orderflow/internal/core/domain/model/audit"
)

// AuditTrail is the sink for audit records written on approved transitions.
// The trail is append-only; entries are never updated or deleted by the
// application.
type AuditTrail interface {
	Append(ctx context.Context, record *audit.Record) error
}
