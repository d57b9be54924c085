package idemrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/idempotency"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIdempotencyStore implements IdempotencyStore using GORM.
// Requires the connection to be opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
type GormIdempotencyStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormIdempotencyStore creates a new GORM-backed idempotency store.
func NewGormIdempotencyStore(db *gorm.DB) *GormIdempotencyStore {
	return &GormIdempotencyStore{
		db:  db,
		now: time.Now,
	}
}

// Find retrieves the live record for (key, endpoint). Records past their
// expiry are treated as absent even before the cleanup job removes them.
func (s *GormIdempotencyStore) Find(
	ctx context.Context,
	key, endpoint string,
) (*idempotency.Record, error) {
	var dto IdempotencyRecordDTO
	err := s.db.WithContext(ctx).
		First(&dto, "key = ? AND endpoint = ? AND expires_at > ?", key, endpoint, s.now()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotency record", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Insert persists a new record. The composite primary key makes the insert
// race-safe: exactly one concurrent writer succeeds, the rest receive
// ErrIdempotencyKeyTaken.
func (s *GormIdempotencyStore) Insert(ctx context.Context, record *idempotency.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrIdempotencyKeyTaken
		}
		return err
	}

	return nil
}

// DeleteExpired removes all records whose expiry lies at or before now.
func (s *GormIdempotencyStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&IdempotencyRecordDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
