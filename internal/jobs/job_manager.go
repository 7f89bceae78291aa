package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates all background jobs in the application.
// Provides a unified interface to start and stop them.
type JobManager struct {
	notificationJob *NotificationJob
	queueMonitorJob *QueueMonitorJob
	logger          *slog.Logger
}

func NewJobManager(logger *slog.Logger, notificationJob *NotificationJob, queueMonitorJob *QueueMonitorJob) *JobManager {
	return &JobManager{
		notificationJob: notificationJob,
		queueMonitorJob: queueMonitorJob,
		logger:          logger.With("component", "job_manager"),
	}
}

// StartAll starts all jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification job: %w", err)
	}

	if err := jm.queueMonitorJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		_ = jm.notificationJob.Stop(context.Background())
		return fmt.Errorf("failed to start queue monitor job: %w", err)
	}

	jm.logger.Info("All background jobs started")
	return nil
}

// StopAll stops the monitor, then drains the notification queue within ctx.
func (jm *JobManager) StopAll(ctx context.Context) error {
	jm.queueMonitorJob.Stop()

	if err := jm.notificationJob.Stop(ctx); err != nil {
		return fmt.Errorf("failed to drain notification job: %w", err)
	}

	return nil
}
