// Package jobs provides the background tasks of the order service.
//
// # Available Jobs
//
//  1. NotificationJob - single worker that delivers order events to the
//     notification dispatcher in publish order. It implements
//     ports.EventPublisher, so command handlers hand events to it directly.
//  2. QueueMonitorJob - cron job (github.com/robfig/cron/v3) that samples the
//     notification backlog into metrics and warns when it nears capacity.
//
// # Usage
//
//	notificationJob := jobs.NewNotificationJob(dispatcher, 1024, metrics, logger)
//	monitorJob := jobs.NewQueueMonitorJob(notificationJob, "@every 15s", metrics, logger)
//	jobManager := jobs.NewJobManager(logger, notificationJob, monitorJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// # Delivery semantics
//
// Publish never blocks. When the queue is full the event is dropped and
// counted. On shutdown intake stops first, then queued events are drained
// until the stop context expires.
package jobs
