// Package idemrepo persists idempotency records behind a composite unique
// constraint on (key, endpoint). The constraint is what gives Insert its
// insert-if-absent semantics: concurrent writers race on the database, not
// on application code.
package idemrepo

import (
	"time"

	"orderflow/internal/core/domain/model/idempotency"
)

// IdempotencyRecordDTO represents one stored idempotency record.
// The composite primary key doubles as the uniqueness constraint.
type IdempotencyRecordDTO struct {
	Key                string    `gorm:"type:varchar(255);primaryKey"`
	Endpoint           string    `gorm:"type:varchar(255);primaryKey"`
	RequestFingerprint string    `gorm:"type:varchar(64);not null"`
	ResponseBody       []byte    `gorm:"type:bytea"`
	ResponseStatusCode int       `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	ExpiresAt          time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for idempotency records.
func (IdempotencyRecordDTO) TableName() string {
	return "idempotency_records"
}

// fromDomain converts an idempotency record to its database representation.
func fromDomain(record *idempotency.Record) IdempotencyRecordDTO {
	return IdempotencyRecordDTO{
		Key:                record.Key(),
		Endpoint:           record.Endpoint(),
		RequestFingerprint: record.RequestFingerprint(),
		ResponseBody:       record.ResponseBody(),
		ResponseStatusCode: record.ResponseStatusCode(),
		CreatedAt:          record.CreatedAt(),
		ExpiresAt:          record.ExpiresAt(),
	}
}

// toDomain converts a database DTO back to a domain record.
func toDomain(dto IdempotencyRecordDTO) (*idempotency.Record, error) {
	return idempotency.RestoreRecord(
		dto.Key,
		dto.Endpoint,
		dto.RequestFingerprint,
		dto.ResponseBody,
		dto.ResponseStatusCode,
		dto.CreatedAt,
		dto.ExpiresAt,
	)
}
