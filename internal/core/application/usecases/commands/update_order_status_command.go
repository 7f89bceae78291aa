package commands

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to another status. The
// requested code is passed through as-is, deciding on it is the lifecycle's job.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    int64
	statusCode int

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID int64, statusCode int) (UpdateOrderStatusCommand, error) {
	if orderID <= 0 {
		return UpdateOrderStatusCommand{}, errs.NewValueIsOutOfRangeError("id", orderID, 1, "unbounded")
	}

	return UpdateOrderStatusCommand{
		orderID:    orderID,
		statusCode: statusCode,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

func (c UpdateOrderStatusCommand) StatusCode() int {
	return c.statusCode
}
