// Package inmemory provides a map-backed idempotency store for tests and
// local development. It honors the same contract as the postgres adapter,
// including insert-if-absent semantics.
package inmemory

import (
	"context"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/idempotency"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

type recordKey struct {
	key      string
	endpoint string
}

// IdempotencyStore implements ports.IdempotencyStore over a mutex-guarded map.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[recordKey]*idempotency.Record
}

// NewIdempotencyStore constructs an empty in-memory store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: make(map[recordKey]*idempotency.Record)}
}

// Find implements ports.IdempotencyStore. Expired records are treated as absent.
func (s *IdempotencyStore) Find(_ context.Context, key, endpoint string) (*idempotency.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[recordKey{key: key, endpoint: endpoint}]
	if !ok || record.IsExpired(time.Now()) {
		return nil, errs.NewObjectNotFoundError("idempotency record", key)
	}
	return record, nil
}

// Insert implements ports.IdempotencyStore with insert-if-absent semantics.
func (s *IdempotencyStore) Insert(_ context.Context, record *idempotency.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := recordKey{key: record.Key(), endpoint: record.Endpoint()}
	if existing, ok := s.records[id]; ok && !existing.IsExpired(time.Now()) {
		return ports.ErrIdempotencyKeyTaken
	}
	s.records[id] = record
	return nil
}

// DeleteExpired implements ports.IdempotencyStore.
func (s *IdempotencyStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if record.IsExpired(now) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}
