// Package idempotency contains the idempotency record entity: the stored
// outcome of a completed mutating request, keyed by a client-supplied
// idempotency key and the endpoint it targeted.
package idempotency

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
)

// DefaultTTL is the default retention period for idempotency records.
const DefaultTTL = 24 * time.Hour

var (
	// ErrRecordIsNotConstructed is returned when a Record was not created
	// through NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
)

// Record captures the response of a completed request under an idempotency
// key. At most one record exists per (key, endpoint) pair; the fingerprint
// is immutable after creation, so a reused key with a different request
// body can always be detected as a conflict rather than silently replayed.
//
// Records are read-only after creation and removed by a periodic sweep once
// expired.
type Record struct {
	key                string
	endpoint           string
	requestFingerprint string
	responseBody       []byte
	responseStatusCode int
	createdAt          time.Time
	expiresAt          time.Time

	isConstructed bool
}

// NewRecord creates a record for a request that just completed.
// All of key, endpoint, and fingerprint are required; the TTL defaults to
// DefaultTTL when non-positive.
func NewRecord(
	key string,
	endpoint string,
	requestFingerprint string,
	responseBody []byte,
	responseStatusCode int,
	now time.Time,
	ttl time.Duration,
) (*Record, error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("idempotency key")
	}
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}
	if requestFingerprint == "" {
		return nil, errs.NewValueIsRequiredError("request fingerprint")
	}
	if responseStatusCode < 100 || responseStatusCode > 599 {
		return nil, errs.NewValueIsOutOfRangeError("response status code", responseStatusCode, 100, 599)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now = now.UTC()
	return &Record{
		key:                key,
		endpoint:           endpoint,
		requestFingerprint: requestFingerprint,
		responseBody:       append([]byte(nil), responseBody...),
		responseStatusCode: responseStatusCode,
		createdAt:          now,
		expiresAt:          now.Add(ttl),
		isConstructed:      true,
	}, nil
}

// RestoreRecord reconstructs a record from persistence with stored timestamps.
func RestoreRecord(
	key string,
	endpoint string,
	requestFingerprint string,
	responseBody []byte,
	responseStatusCode int,
	createdAt time.Time,
	expiresAt time.Time,
) (*Record, error) {
	record, err := NewRecord(key, endpoint, requestFingerprint, responseBody, responseStatusCode, createdAt, DefaultTTL)
	if err != nil {
		return nil, err
	}
	record.createdAt = createdAt.UTC()
	record.expiresAt = expiresAt.UTC()
	return record, nil
}

// Validate ensures the Record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// Key returns the client-supplied idempotency key.
func (r *Record) Key() string {
	return r.key
}

// Endpoint returns the endpoint identifier the key was used against.
func (r *Record) Endpoint() string {
	return r.endpoint
}

// RequestFingerprint returns the hash of the canonicalized request body.
func (r *Record) RequestFingerprint() string {
	return r.requestFingerprint
}

// ResponseBody returns a copy of the stored response body.
func (r *Record) ResponseBody() []byte {
	return append([]byte(nil), r.responseBody...)
}

// ResponseStatusCode returns the stored response status code.
func (r *Record) ResponseStatusCode() int {
	return r.responseStatusCode
}

// CreatedAt returns when the record was created, in UTC.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

// ExpiresAt returns when the record becomes eligible for the cleanup sweep.
func (r *Record) ExpiresAt() time.Time {
	return r.expiresAt
}

// IsExpired reports whether the record has passed its expiry at the given time.
func (r *Record) IsExpired(now time.Time) bool {
	return !now.UTC().Before(r.expiresAt)
}
