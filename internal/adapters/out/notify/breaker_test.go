package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"orders/internal/core/application/notifications"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyChannel struct {
	err   error
	calls int
}

func (c *flakyChannel) Name() string { return "flaky" }

func (c *flakyChannel) Send(context.Context, string, notifications.Message) error {
	c.calls++
	return c.err
}

func testBreakerSettings() BreakerSettings {
	return BreakerSettings{MinRequests: 3, FailureRatio: 0.5, OpenTimeout: time.Hour}
}

func TestBreakerChannel_PassesThrough(t *testing.T) {
	inner := &flakyChannel{}
	ch := NewBreakerChannel(inner, testBreakerSettings(), slog.New(slog.DiscardHandler))

	for range 5 {
		require.NoError(t, ch.Send(t.Context(), "r", testMessage()))
	}

	assert.Equal(t, 5, inner.calls)
	assert.Equal(t, "flaky", ch.Name())
	assert.Equal(t, gobreaker.StateClosed, ch.State())
}

func TestBreakerChannel_OpensAfterRepeatedFailures(t *testing.T) {
	boom := errors.New("connection refused")
	inner := &flakyChannel{err: boom}
	ch := NewBreakerChannel(inner, testBreakerSettings(), slog.New(slog.DiscardHandler))

	for range 3 {
		assert.ErrorIs(t, ch.Send(t.Context(), "r", testMessage()), boom)
	}
	require.Equal(t, gobreaker.StateOpen, ch.State())

	err := ch.Send(t.Context(), "r", testMessage())

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.calls, "open breaker must not reach the channel")
}

func TestBreakerChannel_StaysClosedBelowMinRequests(t *testing.T) {
	inner := &flakyChannel{err: errors.New("timeout")}
	ch := NewBreakerChannel(inner, testBreakerSettings(), slog.New(slog.DiscardHandler))

	_ = ch.Send(t.Context(), "r", testMessage())
	_ = ch.Send(t.Context(), "r", testMessage())

	assert.Equal(t, gobreaker.StateClosed, ch.State())
}
