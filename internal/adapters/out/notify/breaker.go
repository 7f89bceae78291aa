package notify

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/application/notifications"

	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker of a channel.
type BreakerSettings struct {
	// MinRequests is the number of sends in the current window before the
	// failure ratio is considered.
	MinRequests uint32
	// FailureRatio opens the circuit when reached.
	FailureRatio float64
	// OpenTimeout is how long the circuit stays open before probing again.
	OpenTimeout time.Duration
	// Interval resets the counts while closed. Zero never resets.
	Interval time.Duration
}

// DefaultBreakerSettings trips after 5 sends with at least 60% failures and
// probes again after 30s.
var DefaultBreakerSettings = BreakerSettings{
	MinRequests:  5,
	FailureRatio: 0.6,
	OpenTimeout:  30 * time.Second,
	Interval:     time.Minute,
}

// BreakerChannel guards a channel with a circuit breaker so an unreachable
// endpoint fails fast instead of holding up the delivery worker.
// While open, Send returns an error wrapping gobreaker.ErrOpenState.
type BreakerChannel struct {
	inner notifications.Channel
	cb    *gobreaker.CircuitBreaker
}

func NewBreakerChannel(inner notifications.Channel, settings BreakerSettings, logger *slog.Logger) *BreakerChannel {
	logger = logger.With("component", "notification_breaker", "channel", inner.Name())

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})

	return &BreakerChannel{inner: inner, cb: cb}
}

func (c *BreakerChannel) Name() string {
	return c.inner.Name()
}

func (c *BreakerChannel) Send(ctx context.Context, recipient string, msg notifications.Message) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.inner.Send(ctx, recipient, msg)
	})
	return err
}

// State reports the breaker state, for diagnostics.
func (c *BreakerChannel) State() gobreaker.State {
	return c.cb.State()
}
