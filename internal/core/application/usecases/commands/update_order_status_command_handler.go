package commands

import (
	"context"
	"errors"
	"log/slog"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// UpdateOrderStatusResult is the outcome of a status update. Only UpdateFailed
// is accompanied by an error.
type UpdateOrderStatusResult int

const (
	UpdateSucceeded UpdateOrderStatusResult = iota
	UpdateNotFound
	UpdateNotAllowed
	UpdateFailed
)

func (r UpdateOrderStatusResult) String() string {
	switch r {
	case UpdateSucceeded:
		return "Succeeded"
	case UpdateNotFound:
		return "NotFound"
	case UpdateNotAllowed:
		return "NotAllowed"
	case UpdateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// UpdateOrderStatusCommandHandler applies the lifecycle rule to a locked order
// row and publishes OrderStatusChanged after a successful commit.
//
// Example:
//
//	cmd, _ := NewUpdateOrderStatusCommand(42, order.Completed.Code())
//	result, err := handler.Handle(ctx, cmd)
//	switch result {
//	case UpdateNotFound:
//	    // 404
//	case UpdateNotAllowed:
//	    // 403
//	case UpdateFailed:
//	    // 500, err holds the cause
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger.With("component", "update_order_status_handler"),
	}
}

// Handle reads the order under a row lock, so two concurrent updates of the
// same order are serialized and at most one of them succeeds.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateFailed, err
	}

	id := cmd.OrderID()
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin transaction", "operation", "update", "order_id", id, "error", err)
		return UpdateFailed, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return UpdateNotFound, nil
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load order", "operation", "update", "order_id", id, "error", err)
		return UpdateFailed, err
	}

	event, err := aggregate.ChangeStatus(cmd.StatusCode(), h.clock.now())
	if err != nil {
		h.logger.InfoContext(ctx, "status change rejected",
			"order_id", id, "current", aggregate.Status().String(), "requested", cmd.StatusCode())
		return UpdateNotAllowed, nil
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		h.logger.ErrorContext(ctx, "failed to update order", "operation", "update", "order_id", id, "error", err)
		return UpdateFailed, err
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit order", "operation", "update", "order_id", id, "error", err)
		return UpdateFailed, err
	}

	h.publisher.Publish(ctx, event)

	h.logger.InfoContext(ctx, "order status changed", "order_id", id, "old", event.OldStatus, "new", event.NewStatus)
	return UpdateSucceeded, nil
}
