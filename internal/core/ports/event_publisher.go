package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// EventPublisher hands domain events to asynchronous delivery. Publish must
// not block the caller and must not report delivery failures.
type EventPublisher interface {
	Publish(ctx context.Context, event order.Event)
}
