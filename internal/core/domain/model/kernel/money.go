package kernel

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when an order is created without a currency.
const DefaultCurrency = "RMB"

const (
	maxCurrencyLength = 16
	amountScale       = 2
)

// maxAmount and amountScale match the numeric(19,2) storage column.
var maxAmount = decimal.New(1, 17)

var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney constructor")

// Money is an immutable amount in a currency.
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney validates amount and currency. Amounts carry at most two fractional
// digits and stay below 10^17. A blank currency becomes DefaultCurrency.
//
// Example:
//
//	total, err := kernel.NewMoney(decimal.RequireFromString("12.34"), "")
//	// total.Currency() == "RMB"
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("totalAmount", amount.String(), 0, "unbounded")
	}
	if !amount.Equal(amount.Round(amountScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), amountScale))
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s must be less than %s", amount.String(), maxAmount.String()))
	}

	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) > maxCurrencyLength {
		return Money{}, errs.NewValueIsInvalidError("currency")
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// MustNewMoney panics on invalid input. Intended for tests and constants.
func MustNewMoney(amount string, currency string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares amounts numerically, so 1.5 equals 1.50.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.String() + " " + m.currency
}
