// Package auditrepo persists the append-only audit trail of order transitions.
package auditrepo

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// AuditRecordDTO represents one audit trail row. Rows are written on approved
// transitions and never updated or deleted.
type AuditRecordDTO struct {
	ID         string    `gorm:"type:varchar(26);primaryKey"`
	Action     string    `gorm:"type:varchar(64);not null;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OldStatus  int       `gorm:"not null"`
	NewStatus  int       `gorm:"not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OccurredAt time.Time `gorm:"not null;index"`
	Metadata   []byte    `gorm:"type:jsonb"`
}

// TableName specifies the database table name for audit trail rows.
func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

// fromDomain converts an audit record to its database representation.
// There is no reverse mapping: the application never reads the trail back.
func fromDomain(record *audit.Record) (AuditRecordDTO, error) {
	var metadata []byte
	if len(record.Metadata()) > 0 {
		raw, err := json.Marshal(record.Metadata())
		if err != nil {
			return AuditRecordDTO{}, err
		}
		metadata = raw
	}

	return AuditRecordDTO{
		ID:         record.ID(),
		Action:     record.Action(),
		OrderID:    record.OrderID().Bytes(),
		OldStatus:  int(record.OldStatus()),
		NewStatus:  int(record.NewStatus()),
		ActorID:    record.ActorID().Bytes(),
		BranchID:   record.BranchID().Bytes(),
		OccurredAt: record.OccurredAt(),
		Metadata:   metadata,
	}, nil
}
