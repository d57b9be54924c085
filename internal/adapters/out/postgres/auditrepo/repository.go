package auditrepo

import (
	"context"

	"orderflow/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditTrail implements AuditTrail using GORM.
type GormAuditTrail struct {
	db *gorm.DB
}

// NewGormAuditTrail creates a new GORM-backed audit trail.
func NewGormAuditTrail(db *gorm.DB) *GormAuditTrail {
	return &GormAuditTrail{db: db}
}

// Append writes one audit record. The caller is expected to run this inside
// the same transaction as the status change it documents.
func (t *GormAuditTrail) Append(ctx context.Context, record *audit.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(record)
	if err != nil {
		return err
	}

	return t.db.WithContext(ctx).Create(&dto).Error
}
