// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. StaleOrderReaperJob - Runs every minute to cancel orders that have been
// stuck in Pending longer than the configured TTL, releasing their reserved
// stock back into the catalog.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(stalePendingOrdersHandler, cancelOrderHandler, ttl, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The reaper skips orders that left Pending between the query and the
//     cancel attempt; that race is expected.
//   - All other failures are logged and the sweep continues with the next order.
package jobs
