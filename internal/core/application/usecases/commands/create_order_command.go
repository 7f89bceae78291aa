package commands

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Widget", "Alice", decimal.RequireFromString("12.34"), "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	snapshot, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	productName string
	customer    string
	total       kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. A blank currency falls back to
// kernel.DefaultCurrency.
func NewCreateOrderCommand(
	productName, customer string,
	totalAmount decimal.Decimal,
	currency string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductName(productName),
		cmd.setCustomer(customer),
		cmd.setTotal(totalAmount, currency),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ProductName() string {
	return c.productName
}

func (c CreateOrderCommand) Customer() string {
	return c.customer
}

func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

func (c *CreateOrderCommand) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}

	c.productName = productName
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setTotal(amount decimal.Decimal, currency string) error {
	total, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return err
	}

	c.total = total
	return nil
}
