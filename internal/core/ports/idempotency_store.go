package ports

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/idempotency"
)

// ErrIdempotencyKeyTaken is returned by IdempotencyStore.Insert when a
// record for the same (key, endpoint) pair already exists. The store must
// detect this through a native uniqueness primitive (SQL unique constraint,
// conditional put), never by read-then-write.
var ErrIdempotencyKeyTaken = errors.New("idempotency record already exists for this key and endpoint")

// IdempotencyStore defines the persistence contract for idempotency records.
// The backing store must support a uniqueness constraint over
// (key, endpoint), insert-if-absent semantics, and range deletion by expiry.
type IdempotencyStore interface {
	// Find retrieves the record for (key, endpoint).
	// Expired records are excluded as if already deleted. Returns
	// errs.ObjectNotFoundError when no live record exists.
	Find(ctx context.Context, key, endpoint string) (*idempotency.Record, error)

	// Insert persists a new record, relying on the store's uniqueness
	// constraint. Returns ErrIdempotencyKeyTaken when a record for the
	// pair already exists; the existing record is never overwritten.
	Insert(ctx context.Context, record *idempotency.Record) error

	// DeleteExpired removes all records whose expiry lies at or before now
	// and returns the number of deleted records. Safe to run concurrently
	// with itself; deleting an already-deleted row is a no-op.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
