package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderIDAlreadyAssigned is returned when AssignID is called twice.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of a single purchase.
//
// Invariants:
//   - product name and customer are non-empty
//   - total amount is non-negative
//   - status is always a valid Status
//   - createTime <= updateTime
//   - the id is zero until the store assigns it, and never changes afterwards
type Order struct {
	id          int64
	productName string
	customer    string
	total       kernel.Money
	status      Status
	createTime  time.Time
	updateTime  time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Created status with both timestamps set to now.
//
// Example:
//
//	total, _ := kernel.NewMoney(decimal.RequireFromString("12.34"), "")
//	o, err := order.NewOrder("Widget", "Alice", total, time.Now())
func NewOrder(productName, customer string, total kernel.Money, now time.Time) (*Order, error) {
	o := &Order{
		status:     Created,
		createTime: now,
		updateTime: now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setProductName(productName),
		o.setCustomer(customer),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order. Used by repositories only.
func RestoreOrder(
	id int64,
	productName, customer string,
	total kernel.Money,
	status Status,
	createTime, updateTime time.Time,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("id", id, 1, "unbounded")
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if updateTime.Before(createTime) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"updateTime",
			fmt.Errorf("%s is before create time %s", updateTime, createTime),
		)
	}

	o := &Order{
		id:         id,
		status:     status,
		createTime: createTime,
		updateTime: updateTime,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setProductName(productName),
		o.setCustomer(customer),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) ProductName() string {
	return o.productName
}

func (o *Order) Customer() string {
	return o.customer
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreateTime() time.Time {
	return o.createTime
}

func (o *Order) UpdateTime() time.Time {
	return o.updateTime
}

// AssignID records the store-generated identifier. It may be called once.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, "unbounded")
	}
	o.id = id
	return nil
}

// ChangeStatus applies the lifecycle rule and, on success, moves the order to
// the requested status and refreshes its update time. The returned event holds
// the pre and post status codes.
//
// On rejection the order is left untouched and the error wraps
// ErrTransitionNotAllowed.
func (o *Order) ChangeStatus(requestedCode int, now time.Time) (OrderStatusChanged, error) {
	transition, err := ValidateTransition(o.status, requestedCode)
	if err != nil {
		return OrderStatusChanged{}, err
	}

	o.status = transition.To
	if now.Before(o.createTime) {
		now = o.createTime
	}
	o.updateTime = now

	return NewOrderStatusChanged(o.Snapshot(), transition, now), nil
}

// Snapshot returns an immutable copy of the order state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:          o.id,
		ProductName: o.productName,
		Customer:    o.customer,
		TotalAmount: o.total.Amount(),
		Currency:    o.total.Currency(),
		Status:      o.status,
		CreateTime:  o.createTime,
		UpdateTime:  o.updateTime,
	}
}

func (o *Order) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	o.productName = productName
	return nil
}

func (o *Order) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}
