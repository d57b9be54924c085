package idempotency_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"orderflow/internal/adapters/out/inmemory"
	"orderflow/internal/core/application/idempotency"
	model "orderflow/internal/core/domain/model/idempotency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endpoint = "POST /api/v1/orders/{id}/status"

func newService(opts ...idempotency.Option) *idempotency.Service {
	return idempotency.NewService(inmemory.NewIdempotencyStore(), opts...)
}

func TestFingerprint(t *testing.T) {
	t.Run("key_order_does_not_affect_hash", func(t *testing.T) {
		a := idempotency.Fingerprint([]byte(`{"newStatus":"Closed","reason":"","amount":10000}`))
		b := idempotency.Fingerprint([]byte(`{"amount":10000,"reason":"","newStatus":"Closed"}`))

		assert.Equal(t, a, b)
	})

	t.Run("nested_objects_are_canonicalized_recursively", func(t *testing.T) {
		a := idempotency.Fingerprint([]byte(`{"outer":{"b":2,"a":1},"list":[{"y":2,"x":1}]}`))
		b := idempotency.Fingerprint([]byte(`{"list":[{"x":1,"y":2}],"outer":{"a":1,"b":2}}`))

		assert.Equal(t, a, b)
	})

	t.Run("different_values_hash_differently", func(t *testing.T) {
		a := idempotency.Fingerprint([]byte(`{"amount":10000}`))
		b := idempotency.Fingerprint([]byte(`{"amount":8000}`))

		assert.NotEqual(t, a, b)
	})

	t.Run("whitespace_between_tokens_is_irrelevant", func(t *testing.T) {
		a := idempotency.Fingerprint([]byte(`{"amount": 10000}`))
		b := idempotency.Fingerprint([]byte(`{"amount":10000}`))

		assert.Equal(t, a, b)
	})

	t.Run("non_json_bodies_hash_as_is", func(t *testing.T) {
		a := idempotency.Fingerprint([]byte("not json"))
		b := idempotency.Fingerprint([]byte("not json"))
		c := idempotency.Fingerprint([]byte("not json!"))

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("stable_across_calls", func(t *testing.T) {
		body := []byte(`{"newStatus":"Sent"}`)
		first := idempotency.Fingerprint(body)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, idempotency.Fingerprint(body))
		}
	})
}

func TestService_CheckAndStore(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"newStatus":"Closed"}`)

	t.Run("first_check_proceeds", func(t *testing.T) {
		svc := newService()

		result, err := svc.Check(ctx, "key-1", endpoint, body)

		require.NoError(t, err)
		assert.False(t, result.IsDuplicate)
		assert.False(t, result.FingerprintMismatch)
	})

	t.Run("repeated_key_with_same_body_replays_response", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{"status":"Closed"}`), 200))

		result, err := svc.Check(ctx, "key-1", endpoint, body)

		require.NoError(t, err)
		assert.True(t, result.IsDuplicate)
		assert.Equal(t, []byte(`{"status":"Closed"}`), result.ResponseBody)
		assert.Equal(t, 200, result.StatusCode)
	})

	t.Run("repeated_key_with_reordered_body_still_replays", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint,
			[]byte(`{"newStatus":"Closed","reason":""}`), []byte(`{}`), 200))

		result, err := svc.Check(ctx, "key-1", endpoint, []byte(`{"reason":"","newStatus":"Closed"}`))

		require.NoError(t, err)
		assert.True(t, result.IsDuplicate)
	})

	t.Run("repeated_key_with_different_body_is_conflict", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{}`), 200))

		result, err := svc.Check(ctx, "key-1", endpoint, []byte(`{"newStatus":"Voided"}`))

		require.NoError(t, err)
		assert.False(t, result.IsDuplicate)
		assert.True(t, result.FingerprintMismatch)
	})

	t.Run("same_key_different_endpoint_is_independent", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{}`), 200))

		result, err := svc.Check(ctx, "key-1", "POST /api/v1/orders", body)

		require.NoError(t, err)
		assert.False(t, result.IsDuplicate)
	})
}

func TestService_Store_RaceResolution(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"newStatus":"Closed"}`)

	t.Run("losing_writer_with_same_fingerprint_resolves_via_read", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{"winner":true}`), 200))

		// The racer lost the insert but carried the same body; resolved benignly.
		err := svc.Store(ctx, "key-1", endpoint, body, []byte(`{"winner":false}`), 200)
		require.NoError(t, err)

		// The original record survives untouched.
		result, err := svc.Check(ctx, "key-1", endpoint, body)
		require.NoError(t, err)
		assert.True(t, result.IsDuplicate)
		assert.Equal(t, []byte(`{"winner":true}`), result.ResponseBody)
	})

	t.Run("losing_writer_with_different_fingerprint_reports_conflict", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{}`), 200))

		err := svc.Store(ctx, "key-1", endpoint, []byte(`{"newStatus":"Voided"}`), []byte(`{}`), 200)

		require.ErrorIs(t, err, idempotency.ErrFingerprintMismatch)
	})

	t.Run("concurrent_stores_never_overwrite", func(t *testing.T) {
		svc := newService()

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				errs[n] = svc.Store(ctx, "key-1", endpoint, body, []byte(`{}`), 200)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		result, err := svc.Check(ctx, "key-1", endpoint, body)
		require.NoError(t, err)
		assert.True(t, result.IsDuplicate)
	})
}

func TestService_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"newStatus":"Closed"}`)

	t.Run("expired_records_are_swept_and_excluded", func(t *testing.T) {
		current := time.Now()
		var mu sync.Mutex
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return current
		}
		svc := newService(idempotency.WithTTL(time.Hour), idempotency.WithClock(clock))

		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{}`), 200))

		mu.Lock()
		current = current.Add(2 * time.Hour)
		mu.Unlock()

		deleted, err := svc.CleanupExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		result, err := svc.Check(ctx, "key-1", endpoint, body)
		require.NoError(t, err)
		assert.False(t, result.IsDuplicate)
	})

	t.Run("live_records_survive_cleanup", func(t *testing.T) {
		svc := newService()
		require.NoError(t, svc.Store(ctx, "key-1", endpoint, body, []byte(`{}`), 200))

		deleted, err := svc.CleanupExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, deleted)

		result, err := svc.Check(ctx, "key-1", endpoint, body)
		require.NoError(t, err)
		assert.True(t, result.IsDuplicate)
	})

	t.Run("overlapping_cleanups_are_harmless", func(t *testing.T) {
		svc := newService()

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CleanupExpired(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}

func TestService_StorageFailurePropagates(t *testing.T) {
	svc := idempotency.NewService(failingStore{})

	_, err := svc.Check(context.Background(), "key-1", endpoint, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, idempotency.ErrFingerprintMismatch))
}

type failingStore struct{}

func (failingStore) Find(context.Context, string, string) (*model.Record, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Insert(context.Context, *model.Record) error {
	return errors.New("connection refused")
}

func (failingStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("connection refused")
}
