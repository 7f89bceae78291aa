package commands

import (
	"context"
	"log/slog"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// CreateOrderCommandHandler persists new orders in Created status and
// announces each of them with an OrderCreated event once committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle creates the order and returns its committed state, including the
// store-assigned id. Nothing is published unless the transaction commits.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock.now()
	aggregate, err := order.NewOrder(cmd.ProductName(), cmd.Customer(), cmd.Total(), now)
	if err != nil {
		return order.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin transaction", "operation", "create", "error", err)
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		h.logger.ErrorContext(ctx, "failed to add order", "operation", "create", "error", err)
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit order",
			"operation", "create", "order_id", aggregate.ID(), "error", err)
		return order.Snapshot{}, err
	}

	snapshot := aggregate.Snapshot()
	h.publisher.Publish(ctx, order.NewOrderCreated(snapshot, now))

	h.logger.InfoContext(ctx, "order created", "order_id", snapshot.ID)
	return snapshot, nil
}
