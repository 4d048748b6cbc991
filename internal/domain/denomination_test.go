package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"0.1", 10},
		{"0.05", 5},
		{"130.50", 13050},
		{"10000", 1000000},
		{"-5.00", -500},
		// half away from zero, both signs
		{"0.005", 1},
		{"0.015", 2},
		{"-0.005", -1},
		{"0.0049", 0},
		{"1.999", 200},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinorUnits(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestToMinorUnits_FloatInputIsExact(t *testing.T) {
	// 0.1 + 0.2 in binary floating point is 0.30000000000000004
	sum := decimal.NewFromFloat(0.1).Add(decimal.NewFromFloat(0.2))
	assert.Equal(t, int64(30), ToMinorUnits(sum))
	// 1.005 is stored as 1.00499999999999989... as a float64
	assert.Equal(t, int64(101), ToMinorUnits(decimal.NewFromFloat(1.005)))
}

func TestToMinorUnits_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, MaxMinorUnits, ToMinorUnits(decimal.RequireFromString("1e20")))
	assert.Equal(t, -MaxMinorUnits, ToMinorUnits(decimal.RequireFromString("-1e20")))
	assert.Equal(t, MaxMinorUnits, ToMinorUnits(decimal.RequireFromString("10000000000000")))
}

func TestMinorUnitsArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{name: "product", got: MulMinorUnits(20, 3), want: 60},
		{name: "product saturates", got: MulMinorUnits(10000, 92233720368547758), want: MaxMinorUnits},
		{name: "product of non-positive", got: MulMinorUnits(-5, 3), want: 0},
		{name: "sum", got: AddMinorUnits(150, -50), want: 100},
		{name: "sum saturates", got: AddMinorUnits(MaxMinorUnits, 1), want: MaxMinorUnits},
		{name: "sum saturates negative", got: AddMinorUnits(-MaxMinorUnits, -1), want: -MaxMinorUnits},
		{name: "sum clamps wild operands", got: AddMinorUnits(9223372036854775807, 9223372036854775807), want: MaxMinorUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	assert.True(t, FromMinorUnits(70).Equal(decimal.RequireFromString("0.70")))
	assert.True(t, FromMinorUnits(-500).Equal(decimal.NewFromInt(-5)))
	assert.Equal(t, "0.70", FormatMinorUnits(70))
	assert.Equal(t, "-5.00", FormatMinorUnits(-500))
	assert.Equal(t, "0.00", FormatMinorUnits(0))
	assert.Equal(t, "10000.00", FormatMinorUnits(1000000))
	assert.Equal(t, "-0.10", FormatMinorUnits(-10))
}

func TestDenomination_String(t *testing.T) {
	assert.Equal(t, "0.50", MustDenomination("0.5").String())
	assert.Equal(t, "100.00", MustDenomination("100").String())
	assert.Equal(t, int64(25), MustDenomination("0.25").MinorUnits())
	assert.True(t, MustDenomination("0.25").Value().Equal(decimal.RequireFromString("0.25")))
}

func TestDenomination_Divides(t *testing.T) {
	tests := []struct {
		name         string
		denomination string
		amount       string
		want         bool
		wantQuantity int64
	}{
		{name: "0.20 rows accept even tens", denomination: "0.2", amount: "3.60", want: true, wantQuantity: 18},
		{name: "0.20 rows reject odd tens", denomination: "0.2", amount: "3.70", want: false},
		{name: "0.25 rows accept quarters", denomination: "0.25", amount: "2.75", want: true, wantQuantity: 11},
		{name: "0.25 rows reject dimes", denomination: "0.25", amount: "2.10", want: false},
		{name: "5 rows accept multiples of five", denomination: "5", amount: "45", want: true, wantQuantity: 9},
		{name: "5 rows reject cents", denomination: "5", amount: "45.50", want: false},
		{name: "zero is a valid empty row", denomination: "100", amount: "0", want: true, wantQuantity: 0},
		{name: "negative amounts rejected", denomination: "1", amount: "-2", want: false},
		{name: "sub-cent amounts rejected", denomination: "0.01", amount: "0.015", want: false},
		{name: "JPY 10000 rows", denomination: "10000", amount: "30000", want: true, wantQuantity: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			den := MustDenomination(tt.denomination)
			amount := decimal.RequireFromString(tt.amount)

			assert.Equal(t, tt.want, den.Divides(amount))
			q, ok := den.QuantityFromRowTotal(amount)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.wantQuantity, q)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"", 0},
		{"7", 7},
		{" 12 ", 12},
		{"12abc", 12},
		{"1.5", 1},
		{"+3", 3},
		{"-3", 0},
		{"abc", 0},
		{"NaN", 0},
		{"5000000000", MaxQuantity},
		{"99999999999999999999999", MaxQuantity},
		{"-99999999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.raw))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "0"},
		{"200", "200"},
		{" 12.50 ", "12.5"},
		{"-5", "-5"},
		{"12.5abc", "12.5"},
		{"7.", "7"},
		{".5", "0.5"},
		{"+3.25", "3.25"},
		{"abc", "0"},
		{"NaN", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.True(t, ParseAmount(tt.raw).Equal(decimal.RequireFromString(tt.want)), "got %s", ParseAmount(tt.raw))
		})
	}
}

func TestCounts(t *testing.T) {
	c := Counts{MustDenomination("1"): 3, MustDenomination("2"): -1}

	assert.Equal(t, int64(3), c.Quantity(MustDenomination("1")))
	assert.Equal(t, int64(0), c.Quantity(MustDenomination("2")))
	assert.Equal(t, int64(0), c.Quantity(MustDenomination("5")))

	huge := Counts{MustDenomination("1"): 92233720368547758}
	assert.Equal(t, MaxQuantity, huge.Quantity(MustDenomination("1")))

	clone := c.Clone()
	clone[MustDenomination("1")] = 10
	assert.Equal(t, int64(3), c.Quantity(MustDenomination("1")))
}
