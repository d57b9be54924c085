package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/idempotency"

	"github.com/robfig/cron/v3"
)

// IdempotencyCleanupJob manages the scheduled cleanup of expired
// idempotency records. Runs hourly to reclaim storage; lookups already
// ignore expired records, so nothing depends on the sweep running on time.
type IdempotencyCleanupJob struct {
	service *idempotency.Service
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewIdempotencyCleanupJob creates a new job for sweeping expired
// idempotency records.
func NewIdempotencyCleanupJob(service *idempotency.Service, logger *slog.Logger) *IdempotencyCleanupJob {
	return &IdempotencyCleanupJob{
		service: service,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "idempotency_cleanup_job"),
	}
}

// Start begins the cleanup job to run at the top of every hour.
func (j *IdempotencyCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		deleted, err := j.service.CleanupExpired(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Idempotency cleanup job failed", "error", err)
			return
		}

		if deleted > 0 {
			j.logger.InfoContext(ctx, "Expired idempotency records deleted", "count", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *IdempotencyCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Idempotency cleanup job stopped")
}
