// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping required by the idempotency layer.
//
// # Available Jobs
//
// 1. IdempotencyCleanupJob - Runs hourly to delete idempotency records past
// their retention period
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required services
//	jobManager := jobs.NewJobManager(idempotencyService, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The cleanup job uses the cron expression "0 0 * * * *" (top of every
// hour). Expired records are inert either way - lookups already exclude
// them - so the sweep only reclaims storage and its cadence is not
// correctness-sensitive.
package jobs
