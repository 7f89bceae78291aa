package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindOrderCreated       = "ORDER_CREATED"
	KindOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// Event is a domain event produced by the order lifecycle. The set of
// implementations is closed: OrderCreated and OrderStatusChanged.
type Event interface {
	EventID() uuid.UUID
	Kind() string
	OccurredAt() time.Time
	Order() Snapshot

	isEvent()
}

type eventBase struct {
	id         uuid.UUID
	occurredAt time.Time
	order      Snapshot
}

func (e eventBase) EventID() uuid.UUID    { return e.id }
func (e eventBase) OccurredAt() time.Time { return e.occurredAt }
func (e eventBase) Order() Snapshot       { return e.order }
func (eventBase) isEvent()                {}

// OrderCreated is emitted once after a new order is persisted.
type OrderCreated struct {
	eventBase
}

func NewOrderCreated(order Snapshot, at time.Time) OrderCreated {
	return OrderCreated{eventBase{id: uuid.New(), occurredAt: at, order: order}}
}

func (OrderCreated) Kind() string { return KindOrderCreated }

// OrderStatusChanged is emitted once after a status transition is persisted.
type OrderStatusChanged struct {
	eventBase
	OldStatus int
	NewStatus int
}

func NewOrderStatusChanged(order Snapshot, t Transition, at time.Time) OrderStatusChanged {
	return OrderStatusChanged{
		eventBase: eventBase{id: uuid.New(), occurredAt: at, order: order},
		OldStatus: t.OldCode(),
		NewStatus: t.NewCode(),
	}
}

func (OrderStatusChanged) Kind() string { return KindOrderStatusChanged }
