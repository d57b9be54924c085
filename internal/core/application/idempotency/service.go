// Package idempotency implements the request-level deduplication service:
// fingerprinting of request bodies, duplicate detection with response
// replay, conflict detection for reused keys, and expiry cleanup.
//
// The service guarantees at most one executed side effect per
// (idempotency key, endpoint) pair. It owns the idempotency records
// exclusively; no other component reads or writes them.
package idempotency

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	model "orderflow/internal/core/domain/model/idempotency"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrFingerprintMismatch is returned when an idempotency key is reused with
// a different request fingerprint. This is a definite client error and maps
// to HTTP 409 at the transport boundary.
var ErrFingerprintMismatch = errors.New("idempotency key reused with a different request fingerprint")

// CheckResult is the outcome of checking a key before executing a guarded
// operation.
type CheckResult struct {
	// IsDuplicate is true when a completed request is already recorded
	// under this key with the same fingerprint. ResponseBody and
	// StatusCode then carry the stored response for replay.
	IsDuplicate bool

	// FingerprintMismatch is true when the key is recorded with a
	// different fingerprint. The caller must surface a conflict and must
	// not execute the guarded operation.
	FingerprintMismatch bool

	ResponseBody []byte
	StatusCode   int
}

type clockFunc func() time.Time

// Option customises service behaviour.
type Option func(*Service)

// WithTTL overrides the retention period for stored records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source, primarily for testing.
func WithClock(clock clockFunc) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Service coordinates idempotency checks and stores against a backing
// store. It is stateless apart from configuration and safe for concurrent
// use.
type Service struct {
	store ports.IdempotencyStore
	ttl   time.Duration
	clock clockFunc
}

// NewService creates the idempotency service over the given store.
func NewService(store ports.IdempotencyStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		ttl:   model.DefaultTTL,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check looks up prior completion of (key, endpoint).
//
// No record: the caller may proceed. Record with matching fingerprint: the
// stored response is returned for replay without re-executing anything.
// Record with different fingerprint: FingerprintMismatch is set and the
// caller must refuse the request. Storage failures are returned as errors;
// retrying them with the same key is exactly what idempotency exists to
// make safe.
func (s *Service) Check(ctx context.Context, key, endpoint string, requestBody []byte) (CheckResult, error) {
	fingerprint := Fingerprint(requestBody)

	record, err := s.store.Find(ctx, key, endpoint)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CheckResult{}, nil
	}
	if err != nil {
		return CheckResult{}, err
	}

	if record.RequestFingerprint() != fingerprint {
		return CheckResult{FingerprintMismatch: true}, nil
	}

	return CheckResult{
		IsDuplicate:  true,
		ResponseBody: record.ResponseBody(),
		StatusCode:   record.ResponseStatusCode(),
	}, nil
}

// Store records the response of a guarded operation that just completed.
// It must be called once, after the operation succeeds and before the
// response is returned.
//
// Insert is insert-only. When a concurrent request with the same key won
// the race, the store's uniqueness constraint rejects this insert; Store
// then re-reads the existing record and resolves via read: a matching
// fingerprint is benign (both requests carried the same body), a differing
// one is reported as ErrFingerprintMismatch. The original record is never
// overwritten either way.
func (s *Service) Store(ctx context.Context, key, endpoint string, requestBody, responseBody []byte, statusCode int) error {
	record, err := model.NewRecord(key, endpoint, Fingerprint(requestBody), responseBody, statusCode, s.clock(), s.ttl)
	if err != nil {
		return err
	}

	err = s.store.Insert(ctx, record)
	if errors.Is(err, ports.ErrIdempotencyKeyTaken) {
		existing, findErr := s.store.Find(ctx, key, endpoint)
		if findErr != nil {
			return findErr
		}
		if existing.RequestFingerprint() != record.RequestFingerprint() {
			return ErrFingerprintMismatch
		}
		return nil
	}
	return err
}

// CleanupExpired deletes records past their expiry and returns how many
// were removed. Run by a scheduled job, never inline with request handling.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.clock())
}

// Fingerprint computes the content hash of a request body.
//
// JSON bodies are canonicalized first so key order does not affect the
// hash; two bodies that differ only in object key ordering fingerprint
// identically. Volatile fields are not stripped: callers must exclude them
// before hashing or accept a changed payload as a genuine conflict.
// Non-JSON bodies are hashed as-is.
func Fingerprint(body []byte) string {
	sum := sha256.Sum256(canonicalize(body))
	return hex.EncodeToString(sum[:])
}

func canonicalize(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	// Preserve number representations; float round-tripping must not
	// change the fingerprint of an unchanged body.
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return trimmed
	}

	// encoding/json marshals map keys in sorted order, which applies
	// recursively and yields the canonical form.
	canonical, err := json.Marshal(value)
	if err != nil {
		return trimmed
	}
	return canonical
}
