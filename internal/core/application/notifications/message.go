package notifications

import (
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Message is the channel-neutral rendering of an order event.
type Message struct {
	EventID     uuid.UUID `json:"eventId"`
	Kind        string    `json:"kind"`
	OrderID     int64     `json:"orderId"`
	ProductName string    `json:"productName"`
	Customer    string    `json:"customer"`
	TotalAmount string    `json:"totalAmount"`
	Currency    string    `json:"currency"`
	Status      int       `json:"status"`
	OldStatus   *int      `json:"oldStatus,omitempty"`
	NewStatus   *int      `json:"newStatus,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewMessage(event order.Event) Message {
	snapshot := event.Order()
	msg := Message{
		EventID:     event.EventID(),
		Kind:        event.Kind(),
		OrderID:     snapshot.ID,
		ProductName: snapshot.ProductName,
		Customer:    snapshot.Customer,
		TotalAmount: snapshot.TotalAmount.String(),
		Currency:    snapshot.Currency,
		Status:      snapshot.Status.Code(),
		OccurredAt:  event.OccurredAt(),
	}

	if changed, ok := event.(order.OrderStatusChanged); ok {
		oldStatus, newStatus := changed.OldStatus, changed.NewStatus
		msg.OldStatus = &oldStatus
		msg.NewStatus = &newStatus
	}

	return msg
}

func (m Message) Subject() string {
	return fmt.Sprintf("Order %d: %s", m.OrderID, m.Kind)
}

// Body is a short plain-text description used by text channels.
func (m Message) Body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event %s for order id=%d product=%s customer=%s",
		m.Kind, m.OrderID, m.ProductName, m.Customer)
	if m.OldStatus != nil && m.NewStatus != nil {
		fmt.Fprintf(&b, " status %s -> %s",
			order.Status(*m.OldStatus), order.Status(*m.NewStatus))
	} else {
		fmt.Fprintf(&b, " status %s", order.Status(m.Status))
	}
	fmt.Fprintf(&b, " at %s", m.OccurredAt.Format(time.DateTime))
	return b.String()
}
