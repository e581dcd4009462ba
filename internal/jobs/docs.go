// Package jobs provides scheduled background tasks for the brokerage.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. ExpirationSweepJob - Periodically expires pending quotes and offers
// whose TTL deadline has passed, removing them and notifying subscribers.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepHandler, 30*time.Second, logger)
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
// The sweep interval comes from configuration. Sub-second intervals are
// rounded up to one second, the smallest granularity the scheduler supports.
//
// # Error Handling
//
// A failed sweep pass is logged and retried on the next tick; the job never
// stops itself. Failed job starts stop any already running jobs.
package jobs
