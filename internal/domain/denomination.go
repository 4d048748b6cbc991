package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitsPerMajor is the fixed number of minor units (cents) per major unit.
// Every amount in the system has exactly two fractional digits.
const MinorUnitsPerMajor = 100

// Amounts and counts are bounded so that no sum or product of them can overflow int64.
// Values beyond the bounds are clamped, never wrapped.
const (
	// MaxMinorUnits bounds every amount: 10 trillion major units.
	MaxMinorUnits int64 = 1_000_000_000_000_000
	// MaxQuantity bounds the count of a single denomination.
	MaxQuantity int64 = 1_000_000_000
)

var (
	hundred       = decimal.NewFromInt(MinorUnitsPerMajor)
	maxMinorUnits = decimal.NewFromInt(MaxMinorUnits)

	leadingAmount   = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
	leadingQuantity = regexp.MustCompile(`^[+-]?\d+`)
)

// Denomination is the face value of one coin or note, stored in minor units.
// $1.20 = 120, ¥10000 = 1000000.
type Denomination int64

// NewDenomination converts a decimal face value into a Denomination
func NewDenomination(value decimal.Decimal) Denomination {
	return Denomination(ToMinorUnits(value))
}

// MustDenomination parses a face value like "0.05" and panics on bad input.
// Intended for static tables and tests.
func MustDenomination(value string) Denomination {
	return NewDenomination(decimal.RequireFromString(value))
}

// MinorUnits returns the value in cents
func (d Denomination) MinorUnits() int64 { return int64(d) }

// Value returns the face value as a decimal
func (d Denomination) Value() decimal.Decimal { return FromMinorUnits(int64(d)) }

// String formats the face value with two fractional digits, e.g. "0.50" or "100.00"
func (d Denomination) String() string { return FormatMinorUnits(int64(d)) }

// Divides reports whether amount is a whole, non-negative number of this denomination.
// Used to validate a row total typed directly instead of a count.
func (d Denomination) Divides(amount decimal.Decimal) bool {
	if d <= 0 {
		return false
	}
	cents := ToMinorUnits(amount)
	if cents < 0 {
		return false
	}
	// Reject amounts with sub-cent precision, they cannot be made of coins.
	if !FromMinorUnits(cents).Equal(amount) {
		return false
	}
	return cents%int64(d) == 0
}

// QuantityFromRowTotal returns how many units of d make up amount.
// Returns false when amount is not a whole multiple of d.
func (d Denomination) QuantityFromRowTotal(amount decimal.Decimal) (int64, bool) {
	if !d.Divides(amount) {
		return 0, false
	}
	return ToMinorUnits(amount) / int64(d), true
}

// Counts maps a denomination to the number of physical units counted.
// An absent denomination means a quantity of 0.
type Counts map[Denomination]int64

// Quantity returns the counted quantity for d, 0 when absent or negative,
// capped at MaxQuantity
func (c Counts) Quantity(d Denomination) int64 {
	return ClampQuantity(c[d])
}

// ClampQuantity limits q to [0, MaxQuantity]
func ClampQuantity(q int64) int64 {
	return min(max(q, 0), MaxQuantity)
}

// Clone returns an independent copy of the counts
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for d, q := range c {
		out[d] = q
	}
	return out
}

// ToMinorUnits converts a decimal amount to integer cents.
// Rounds half away from zero and clamps to ±MaxMinorUnits; every conversion in the system goes through here.
func ToMinorUnits(amount decimal.Decimal) int64 {
	cents := amount.Mul(hundred).Round(0)
	switch {
	case cents.GreaterThan(maxMinorUnits):
		return MaxMinorUnits
	case cents.LessThan(maxMinorUnits.Neg()):
		return -MaxMinorUnits
	}
	return cents.IntPart()
}

// AddMinorUnits returns a+b clamped to ±MaxMinorUnits
func AddMinorUnits(a, b int64) int64 {
	return clampMinorUnits(clampMinorUnits(a) + clampMinorUnits(b))
}

// MulMinorUnits returns units*quantity for positive inputs, saturating at MaxMinorUnits.
// Non-positive inputs give 0.
func MulMinorUnits(units, quantity int64) int64 {
	if units <= 0 || quantity <= 0 {
		return 0
	}
	if units > MaxMinorUnits/quantity {
		return MaxMinorUnits
	}
	return units * quantity
}

func clampMinorUnits(cents int64) int64 {
	return min(max(cents, -MaxMinorUnits), MaxMinorUnits)
}

// FromMinorUnits converts integer cents back to a decimal amount
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatMinorUnits renders cents with exactly two fractional digits
func FormatMinorUnits(cents int64) string {
	return FromMinorUnits(cents).StringFixed(2)
}

// ParseAmount reads a decimal amount from user input.
// Leading numeric text is used ("12.5abc" = 12.5); anything unreadable is 0.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if amount, err := decimal.NewFromString(s); err == nil {
		return amount
	}
	prefix := leadingAmount.FindString(s)
	if prefix == "" {
		return decimal.Zero
	}
	prefix = strings.TrimSuffix(strings.TrimPrefix(prefix, "+"), ".")
	if strings.HasPrefix(prefix, "-.") {
		prefix = "-0" + prefix[1:]
	} else if strings.HasPrefix(prefix, ".") {
		prefix = "0" + prefix
	}
	amount, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ParseQuantity reads a counted quantity from user input.
// Only leading digits are used ("12abc" = 12, "1.5" = 1).
// Unreadable or negative input is 0; anything above MaxQuantity is MaxQuantity.
func ParseQuantity(raw string) int64 {
	prefix := strings.TrimPrefix(leadingQuantity.FindString(strings.TrimSpace(raw)), "+")
	if prefix == "" || strings.HasPrefix(prefix, "-") {
		return 0
	}
	q, err := strconv.ParseInt(prefix, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return MaxQuantity
	}
	if err != nil {
		return 0
	}
	return ClampQuantity(q)
}
