package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("1499.5")
	require.NoError(t, err)
	assert.Equal(t, "1499.50", m.String())

	_, err = ParseMoney("12,00")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	m1 := MoneyFromInt(100)
	m2 := MoneyFromInt(30)

	assert.Equal(t, "130.00", m1.Add(m2).String())
	assert.Equal(t, "70.00", m1.Subtract(m2).String())
	assert.Equal(t, "300.00", m1.MultiplyByInt(3).String())
	assert.Equal(t, "107.00", m1.MultiplyByRate(decimal.RequireFromString("1.07")).String())

	t.Run("division by zero returns error", func(t *testing.T) {
		_, err := m1.DivideBy(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"312.375", "312.38"},
		{"909.4893", "909.49"},
		{"-2.345", "-2.35"},
		{"0.005", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParseMoney(tt.in).Round().String())
		})
	}
}

func TestMoney_ClampZero(t *testing.T) {
	assert.True(t, MoneyFromInt(-500).ClampZero().IsZero())
	assert.Equal(t, "12.00", MoneyFromInt(12).ClampZero().String())
}

func TestMoney_Comparisons(t *testing.T) {
	m1 := MoneyFromInt(100)
	m2 := MoneyFromInt(50)
	m3 := MustParseMoney("100.00")

	assert.True(t, m1.GreaterThan(m2))
	assert.False(t, m2.GreaterThan(m1))

	assert.True(t, m2.LessThan(m1))
	assert.False(t, m1.LessThan(m2))

	assert.True(t, m1.Equals(m3))
	assert.False(t, m1.Equals(m2))
	assert.Equal(t, 0, m1.Cmp(m3))
}

func TestMoney_ZeroValue(t *testing.T) {
	var m Money
	assert.True(t, m.IsZero())
	assert.Equal(t, "0.00", m.String())
	assert.Equal(t, "5.00", m.Add(MoneyFromInt(5)).String())
}

func TestMoney_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Money{"total": MoneyFromInt(1070)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 1070.00}`, string(out))
}

func TestRatio(t *testing.T) {
	t.Run("rounds to requested places", func(t *testing.T) {
		assert.Equal(t, 33.3, Ratio(MoneyFromInt(1), MoneyFromInt(3), 1))
		assert.Equal(t, 33.0, Ratio(MoneyFromInt(1), MoneyFromInt(3), 0))
	})

	t.Run("zero whole yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Ratio(Money{}, Money{}, 1))
	})
}

func TestMoney_IsWholeMinorUnits(t *testing.T) {
	assert.True(t, MustParseMoney("1499.50").IsWholeMinorUnits())
	assert.True(t, MustParseMoney("1499.5").IsWholeMinorUnits())
	assert.True(t, MoneyFromInt(0).IsWholeMinorUnits())
	assert.False(t, MustParseMoney("0.335").IsWholeMinorUnits())
	assert.False(t, MustParseMoney("-0.001").IsWholeMinorUnits())
}
