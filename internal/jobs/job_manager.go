package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/idempotency"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	idempotencyCleanupJob *IdempotencyCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	idempotencyService *idempotency.Service,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		idempotencyCleanupJob: NewIdempotencyCleanupJob(idempotencyService, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.idempotencyCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start idempotency cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.idempotencyCleanupJob.Stop()
}
