package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"orders/internal/core/domain/model/order"
)

var ErrJobAlreadyStarted = errors.New("job already started")

// EventDispatcher delivers one event to every configured channel.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event order.Event)
}

// QueueRecorder observes the notification backlog.
type QueueRecorder interface {
	EventDropped()
	QueueLength(n int)
}

type NotificationJob struct {
	dispatcher EventDispatcher
	recorder   QueueRecorder
	logger     *slog.Logger

	queue chan order.Event
	done  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewNotificationJob(
	dispatcher EventDispatcher,
	queueSize int,
	recorder QueueRecorder,
	logger *slog.Logger,
) *NotificationJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationJob{
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger.With("component", "notification_job"),
		queue:      make(chan order.Event, max(1, queueSize)),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Publish enqueues event for delivery. It returns immediately; if the queue
// is full or the job is stopping, the event is dropped with a warning.
func (j *NotificationJob) Publish(ctx context.Context, event order.Event) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		j.drop(ctx, event, "job stopped")
		return
	}

	select {
	case j.queue <- event:
		j.recorder.QueueLength(len(j.queue))
	default:
		j.drop(ctx, event, "queue full")
	}
}

func (j *NotificationJob) drop(ctx context.Context, event order.Event, reason string) {
	j.recorder.EventDropped()
	j.logger.WarnContext(ctx, "notification event dropped",
		"reason", reason,
		"event_id", event.EventID().String(),
		"kind", event.Kind(),
		"order_id", event.Order().ID,
	)
}

// Start launches the worker.
func (j *NotificationJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.started {
		return ErrJobAlreadyStarted
	}
	j.started = true

	go j.run()

	j.logger.InfoContext(j.ctx, "Notification job started", "capacity", cap(j.queue))
	return nil
}

func (j *NotificationJob) run() {
	defer close(j.done)

	for event := range j.queue {
		j.recorder.QueueLength(len(j.queue))
		j.dispatcher.Dispatch(j.ctx, event)
	}
}

// Stop closes intake and waits for queued events to be delivered. When ctx
// expires first, in-flight sends are cancelled and ctx.Err() is returned.
func (j *NotificationJob) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.queue)
	}
	started := j.started
	j.mu.Unlock()

	if !started {
		j.cancel()
		return nil
	}

	select {
	case <-j.done:
		j.cancel()
		j.logger.InfoContext(ctx, "Notification job stopped")
		return nil
	case <-ctx.Done():
		j.cancel()
		j.logger.WarnContext(ctx, "Notification job stopped before draining", "pending", len(j.queue))
		return ctx.Err()
	}
}

// Len returns the number of queued events.
func (j *NotificationJob) Len() int {
	return len(j.queue)
}

// Cap returns the queue capacity.
func (j *NotificationJob) Cap() int {
	return cap(j.queue)
}
