package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPercentage(t *testing.T) {
	t.Run("ten percent of 1000", func(t *testing.T) {
		p, err := NewPercentage(dec("10"))
		require.NoError(t, err)
		assert.Equal(t, "100.00", p.CalculateDiscount(MoneyFromInt(1000)).String())
		assert.Equal(t, KindPercentage, p.Kind())
	})

	t.Run("fractional percent rounds half up", func(t *testing.T) {
		p, err := NewPercentage(dec("12.5"))
		require.NoError(t, err)
		// 2499 × 0.125 = 312.375
		assert.Equal(t, "312.38", p.CalculateDiscount(MoneyFromInt(2499)).String())
	})

	t.Run("zero percent rejected", func(t *testing.T) {
		_, err := NewPercentage(decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidDiscountValue)
	})
}

func TestFixedAmount(t *testing.T) {
	f, err := NewFixedAmount(MoneyFromInt(1500))
	require.NoError(t, err)

	assert.Equal(t, "1500.00", f.CalculateDiscount(MoneyFromInt(1000)).String())
	assert.Equal(t, "1500.00", f.CalculateDiscount(Money{}).String())

	_, err = NewFixedAmount(MoneyFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidDiscountValue)
}

func TestBuyNPayM(t *testing.T) {
	t.Run("attend 4 pay 3", func(t *testing.T) {
		b, err := NewBuyNPayM(dec("3"))
		require.NoError(t, err)
		assert.Equal(t, "250.00", b.CalculateDiscount(MoneyFromInt(1000)).String())
	})

	t.Run("attend 3 pay 2 rounds", func(t *testing.T) {
		b, err := NewBuyNPayM(dec("2"))
		require.NoError(t, err)
		assert.Equal(t, "333.33", b.CalculateDiscount(MoneyFromInt(1000)).String())
	})

	t.Run("non-positive paid seats rejected", func(t *testing.T) {
		_, err := NewBuyNPayM(dec("-2"))
		assert.ErrorIs(t, err, ErrInvalidDiscountValue)
	})
}

func TestNewDiscountRule(t *testing.T) {
	t.Run("known kinds", func(t *testing.T) {
		for _, kind := range []DiscountKind{KindPercentage, KindFixedAmount, KindBuyNPayM} {
			rule, known, err := NewDiscountRule(kind, dec("5"))
			require.NoError(t, err)
			assert.True(t, known)
			assert.Equal(t, kind, rule.Kind())
		}
	})

	t.Run("unknown kind discounts nothing", func(t *testing.T) {
		rule, known, err := NewDiscountRule("loyalty_points", dec("5"))
		require.NoError(t, err)
		assert.False(t, known)
		assert.True(t, rule.CalculateDiscount(MoneyFromInt(1000)).IsZero())
		assert.Equal(t, DiscountKind("loyalty_points"), rule.Kind())
	})

	t.Run("invalid value rejected for every kind", func(t *testing.T) {
		_, _, err := NewDiscountRule(KindPercentage, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidDiscountValue)

		_, _, err = NewDiscountRule("loyalty_points", decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidDiscountValue)
	})
}
