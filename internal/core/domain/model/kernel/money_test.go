package kernel_test

import (
	"strings"
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("keeps amount and currency", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("12.34"), "USD")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("12.34")))
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "12.34 USD", m.String())
	})

	t.Run("defaults blank currency to RMB", func(t *testing.T) {
		for _, currency := range []string{"", "   "} {
			m, err := kernel.NewMoney(decimal.NewFromInt(5), currency)

			require.NoError(t, err)
			assert.Equal(t, kernel.DefaultCurrency, m.Currency())
		}
	})

	t.Run("accepts zero", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.Zero, "RMB")
		require.NoError(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("-0.01"), "RMB")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "totalAmount")
	})

	t.Run("accepts two fractional digits and trailing zeros", func(t *testing.T) {
		for _, raw := range []string{"12.34", "12.340", "99999999999999999.99"} {
			_, err := kernel.NewMoney(decimal.RequireFromString(raw), "RMB")
			require.NoError(t, err, raw)
		}
	})

	t.Run("rejects more than two fractional digits", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("12.345"), "RMB")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "totalAmount")
	})

	t.Run("rejects amounts that overflow storage", func(t *testing.T) {
		for _, raw := range []string{"100000000000000000", "1e20"} {
			_, err := kernel.NewMoney(decimal.RequireFromString(raw), "RMB")

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})

	t.Run("rejects overlong currency", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(1), strings.Repeat("X", 17))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a := kernel.MustNewMoney("1.5", "RMB")

	assert.True(t, a.IsEqual(kernel.MustNewMoney("1.50", "RMB")))
	assert.False(t, a.IsEqual(kernel.MustNewMoney("1.5", "USD")))
	assert.False(t, a.IsEqual(kernel.MustNewMoney("2", "RMB")))
}

func TestMoney_ZeroValueIsNotConstructed(t *testing.T) {
	var m kernel.Money

	err := m.Validate()

	require.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
}

func TestMustNewMoney_PanicsOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { kernel.MustNewMoney("-1", "RMB") })
	assert.Panics(t, func() { kernel.MustNewMoney("abc", "RMB") })
}
