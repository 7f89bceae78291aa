package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"orders/internal/core/application/notifications"

	"github.com/segmentio/kafka-go"
)

const KafkaChannelName = "kafka"

const eventIDHeader = "event-id"

var ErrKafkaDisabled = errors.New("kafka disabled: no brokers configured")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaChannel publishes JSON messages. Recipients are topic names; the
// message key is the order id so events of one order stay on one partition.
type KafkaChannel struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaChannel returns a channel writing to brokers. With no brokers every
// Send fails with ErrKafkaDisabled.
func NewKafkaChannel(brokers []string, logger *slog.Logger) *KafkaChannel {
	var writer messageWriter
	if len(brokers) > 0 {
		writer = &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
	}
	return newKafkaChannel(writer, logger)
}

func newKafkaChannel(writer messageWriter, logger *slog.Logger) *KafkaChannel {
	return &KafkaChannel{writer: writer, logger: logger.With("component", "kafka_channel")}
}

func (c *KafkaChannel) Name() string {
	return KafkaChannelName
}

func (c *KafkaChannel) Send(ctx context.Context, topic string, msg notifications.Message) error {
	if c.writer == nil {
		return ErrKafkaDisabled
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	err = c.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(msg.OrderID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: eventIDHeader, Value: []byte(msg.EventID.String())},
		},
		Time: msg.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	c.logger.DebugContext(ctx, "event published", "topic", topic, "event_id", msg.EventID.String())
	return nil
}

// Close flushes pending writes.
func (c *KafkaChannel) Close() error {
	if c.writer == nil {
		return nil
	}
	return c.writer.Close()
}
