package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// backlogWarnRatio is the queue fill level above which the monitor warns.
const backlogWarnRatio = 0.8

type queueSampler interface {
	Len() int
	Cap() int
}

// QueueMonitorJob periodically samples the notification backlog.
type QueueMonitorJob struct {
	queue    queueSampler
	schedule string
	recorder QueueRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewQueueMonitorJob creates a monitor running on a robfig/cron schedule,
// e.g. "@every 15s".
func NewQueueMonitorJob(queue queueSampler, schedule string, recorder QueueRecorder, logger *slog.Logger) *QueueMonitorJob {
	return &QueueMonitorJob{
		queue:    queue,
		schedule: schedule,
		recorder: recorder,
		cron:     cron.New(),
		logger:   logger.With("component", "queue_monitor_job"),
	}
}

func (j *QueueMonitorJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.sample); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue monitor job started", "schedule", j.schedule)
	return nil
}

func (j *QueueMonitorJob) sample() {
	length, capacity := j.queue.Len(), j.queue.Cap()
	j.recorder.QueueLength(length)

	if capacity > 0 && float64(length) >= backlogWarnRatio*float64(capacity) {
		j.logger.WarnContext(context.Background(), "Notification backlog is high", "length", length, "capacity", capacity)
	}
}

// Stop waits for a running sample to finish.
func (j *QueueMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Queue monitor job stopped")
}
