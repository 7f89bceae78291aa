// Package queries contains read operations over orders. Handlers never modify
// state and run against the read side of the order store.
package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by id.
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsOutOfRangeError("id", orderID, 1, "unbounded")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderQueryResponse is the read model of one order.
type GetOrderQueryResponse struct {
	ID          int64
	ProductName string
	Customer    string
	TotalAmount decimal.Decimal
	Currency    string
	Status      order.Status
	CreateTime  time.Time
	UpdateTime  time.Time
}

func responseFromSnapshot(s order.Snapshot) GetOrderQueryResponse {
	return GetOrderQueryResponse{
		ID:          s.ID,
		ProductName: s.ProductName,
		Customer:    s.Customer,
		TotalAmount: s.TotalAmount,
		Currency:    s.Currency,
		Status:      s.Status,
		CreateTime:  s.CreateTime,
		UpdateTime:  s.UpdateTime,
	}
}
