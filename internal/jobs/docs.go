// Package jobs provides scheduled background tasks for the traceability engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the manufacturing execution
// service.
//
// # Available Jobs
//
// 1. DowntimeSummaryJob - Runs every five minutes to rebuild per-day downtime
// rollups from the recorded process stops. It refreshes the current UTC day
// and the previous one, so stops resumed after midnight still count toward
// the day they started on.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshSummariesHandler, logger)
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
// The summary job uses the cron expression "0 */5 * * * *", every five
// minutes on the minute. Summaries are rebuildable projections, so a missed
// run is harmless: the next run recomputes the same rows.
//
// # Error Handling
//
// - The summary job logs refresh failures and keeps running; the next tick retries
// - Failed job starts will stop any already running jobs
package jobs
