package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"orders/internal/core/domain/model/order"
)

// Channel delivers a rendered message to one recipient.
type Channel interface {
	Name() string
	Send(ctx context.Context, recipient string, msg Message) error
}

// Recorder counts per-channel delivery outcomes.
type Recorder interface {
	NotificationSent(channel string)
	NotificationFailed(channel string)
}

type noopRecorder struct{}

func (noopRecorder) NotificationSent(string)   {}
func (noopRecorder) NotificationFailed(string) {}

type Dispatcher struct {
	cfg      Config
	channels map[string]Channel
	recorder Recorder
	logger   *slog.Logger
}

// NewDispatcher indexes channels by lower-cased name and drops repeated
// types, keeping the first. A nil recorder disables counting.
func NewDispatcher(cfg Config, channels []Channel, logger *slog.Logger, recorder Recorder) *Dispatcher {
	cfg.Types = uniqueFold(cfg.Types)

	byName := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		byName[strings.ToLower(ch.Name())] = ch
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Dispatcher{
		cfg:      cfg,
		channels: byName,
		recorder: recorder,
		logger:   logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch sends event to every recipient of every configured channel, in
// configuration order. It never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, event order.Event) {
	if len(d.cfg.Types) == 0 {
		return
	}

	msg := NewMessage(event)
	for _, channelType := range d.cfg.Types {
		ch, ok := d.channels[strings.ToLower(channelType)]
		if !ok {
			d.logger.DebugContext(ctx, "unknown notification type ignored", "type", channelType)
			continue
		}

		recipients := d.cfg.recipientsFor(ch.Name())
		if len(recipients) == 0 {
			d.logger.InfoContext(ctx, "no recipient configured, skipping", "channel", ch.Name())
			continue
		}

		for _, recipient := range recipients {
			d.send(ctx, ch, recipient, msg)
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, recipient string, msg Message) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("channel panicked: %v", r)
			}
		}()
		err = ch.Send(ctx, recipient, msg)
	}()

	if err != nil {
		d.recorder.NotificationFailed(ch.Name())
		d.logger.ErrorContext(ctx, "notification failed",
			"channel", ch.Name(),
			"recipient", recipient,
			"event_id", msg.EventID.String(),
			"order_id", msg.OrderID,
			"error", err,
		)
		return
	}

	d.recorder.NotificationSent(ch.Name())
}

func uniqueFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
