// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationDispatchJob drains the notification outbox. Order transitions only
// enqueue notifications after their transaction commits; this job sends them through
// the mail relay, marks them sent, or records the failure so a later run retries.
// A notification that failed MaxAttempts times is marked failed and left alone.
//
// # Usage
//
//	job, err := jobs.NewNotificationDispatchJob(dispatchHandler, cmd, cfg.DispatchSchedule, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron format with seconds. The default "*/5 * * * * *"
// runs every five seconds. A run still in progress makes the next tick skip.
package jobs
