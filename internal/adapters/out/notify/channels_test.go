package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"orders/internal/core/application/notifications"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testMessage() notifications.Message {
	return notifications.Message{
		EventID:     uuid.MustParse("6f2a2c6e-3a4b-4b27-9d7e-1d5b2c3a4f10"),
		Kind:        "ORDER_CREATED",
		OrderID:     42,
		ProductName: "Widget",
		Customer:    "Alice",
		TotalAmount: "12.34",
		Currency:    "RMB",
		Status:      1,
		OccurredAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEmailChannel_LogOnlyWithoutHost(t *testing.T) {
	var buf bytes.Buffer
	ch := NewEmailChannel(SMTPConfig{}, bufferLogger(&buf))
	ch.dial = func(context.Context, string, string) (net.Conn, error) {
		t.Fatal("smtp must not be used without a host")
		return nil, nil
	}

	err := ch.Send(t.Context(), "a@x.com", testMessage())

	require.NoError(t, err)
	assert.Equal(t, "email", ch.Name())
	assert.Contains(t, buf.String(), "sending email")
	assert.Contains(t, buf.String(), "to=a@x.com")
	assert.Contains(t, buf.String(), "order_id=42")
}

func TestSMSChannel_Send(t *testing.T) {
	var buf bytes.Buffer
	ch := NewSMSChannel(bufferLogger(&buf))

	err := ch.Send(t.Context(), "+8613800000000", testMessage())

	require.NoError(t, err)
	assert.Equal(t, "sms", ch.Name())
	assert.Contains(t, buf.String(), "sending sms")
	assert.Contains(t, buf.String(), "+8613800000000")
}

type MockWriter struct{ mock.Mock }

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaChannel_Send(t *testing.T) {
	ctx := t.Context()
	writer := new(MockWriter)
	msg := testMessage()

	writer.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 {
			return false
		}
		m := msgs[0]
		var decoded notifications.Message
		if err := json.Unmarshal(m.Value, &decoded); err != nil {
			return false
		}
		return m.Topic == "orders.events" &&
			string(m.Key) == "42" &&
			len(m.Headers) == 1 &&
			m.Headers[0].Key == "event-id" &&
			string(m.Headers[0].Value) == msg.EventID.String() &&
			decoded.OrderID == 42 &&
			decoded.Kind == "ORDER_CREATED"
	})).Return(nil).Once()

	ch := newKafkaChannel(writer, slog.New(slog.DiscardHandler))
	require.NoError(t, ch.Send(ctx, "orders.events", msg))

	writer.AssertExpectations(t)
	assert.Equal(t, "kafka", ch.Name())
}

func TestKafkaChannel_WriteError(t *testing.T) {
	ctx := t.Context()
	writer := new(MockWriter)
	writeErr := errors.New("leader not available")
	writer.On("WriteMessages", ctx, mock.Anything).Return(writeErr).Once()

	ch := newKafkaChannel(writer, slog.New(slog.DiscardHandler))
	err := ch.Send(ctx, "orders.events", testMessage())

	require.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "orders.events")
}

func TestKafkaChannel_Disabled(t *testing.T) {
	ch := NewKafkaChannel(nil, slog.New(slog.DiscardHandler))

	err := ch.Send(context.Background(), "orders.events", testMessage())

	require.ErrorIs(t, err, ErrKafkaDisabled)
	assert.NoError(t, ch.Close())
}

func TestKafkaChannel_Close(t *testing.T) {
	writer := new(MockWriter)
	writer.On("Close").Return(nil).Once()

	ch := newKafkaChannel(writer, slog.New(slog.DiscardHandler))
	require.NoError(t, ch.Close())
	writer.AssertExpectations(t)
}

var (
	_ notifications.Channel = (*EmailChannel)(nil)
	_ notifications.Channel = (*SMSChannel)(nil)
	_ notifications.Channel = (*KafkaChannel)(nil)
)
