package notify

import (
	"context"
	"log/slog"

	"orders/internal/core/application/notifications"
)

const SMSChannelName = "sms"

// SMSChannel has no provider behind it and records each message in the log.
type SMSChannel struct {
	logger *slog.Logger
}

func NewSMSChannel(logger *slog.Logger) *SMSChannel {
	return &SMSChannel{logger: logger.With("component", "sms_channel")}
}

func (c *SMSChannel) Name() string {
	return SMSChannelName
}

func (c *SMSChannel) Send(ctx context.Context, recipient string, msg notifications.Message) error {
	c.logger.InfoContext(ctx, "sending sms",
		"to", recipient,
		"event", msg.Kind,
		"event_id", msg.EventID.String(),
		"order_id", msg.OrderID,
		"text", msg.Body(),
	)
	return nil
}
