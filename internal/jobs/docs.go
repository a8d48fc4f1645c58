// Package jobs provides scheduled background tasks for the lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the engine needs.
//
// # Available Jobs
//
// 1. TaskReminderJob - Runs on a configurable schedule to send due-soon and
// overdue reminders for open tasks
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sendTaskRemindersHandler, "*/15 * * * *", logger)
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
// A failed sweep is logged and retried on the next tick; reminder flags on
// each task keep redeliveries idempotent.
package jobs
