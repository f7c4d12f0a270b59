package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WholeNumber(t *testing.T) {
	d, err := Parse("150")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(150)))
}

func TestParse_TwoDecimals(t *testing.T) {
	d, err := Parse("99.99")
	require.NoError(t, err)
	assert.Equal(t, "99.99", d.StringFixed(2))
}

func TestParse_OneCent(t *testing.T) {
	d, err := Parse("0.01")
	require.NoError(t, err)
	assert.Equal(t, "0.01", d.StringFixed(2))
}

func TestParse_Zero(t *testing.T) {
	d, err := Parse("0")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse_NonNumeric(t *testing.T) {
	for _, s := range []string{"abc", "NaN", "Inf", "1,50", "--1"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", s)
	}
}

func TestParse_Negative(t *testing.T) {
	_, err := Parse("-20.00")
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse_TooManyDecimals(t *testing.T) {
	_, err := Parse("1.005")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestValidate_Negative(t *testing.T) {
	_, err := Validate(decimal.NewFromFloat(-0.01))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"0.01", "R$ 0,01"},
		{"150", "R$ 150,00"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-99.96", "-R$ 99,96"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FormatBRL(d), "input %s", tt.in)
	}
}
