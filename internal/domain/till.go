package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultFloat is the cash left in the till after banking
var DefaultFloat = decimal.NewFromInt(200)

// TillState is one cashier's cash-up session.
// It is mutated in place as counts are edited and is not safe for concurrent use;
// callers serialise edits.
type TillState struct {
	Currency       string
	Counts         Counts
	Float          decimal.Decimal
	Expected       decimal.Decimal
	Ascending      bool // display order of input rows; never affects banking
	VarianceReason string

	defaultFloat decimal.Decimal
}

// NewTillState creates an empty session for currency.
// A zero defaultFloat uses DefaultFloat.
func NewTillState(currency string, defaultFloat decimal.Decimal) *TillState {
	if defaultFloat.IsZero() {
		defaultFloat = DefaultFloat
	}
	s := &TillState{
		Currency:     LookupCurrency(currency).Code,
		defaultFloat: defaultFloat,
	}
	s.Reset()
	return s
}

// Profile returns the currency profile of the session
func (s *TillState) Profile() CurrencyProfile {
	return LookupCurrency(s.Currency)
}

// SetQuantity records the counted quantity of d, capped at MaxQuantity.
// Denominations not in the session currency are ignored and reported as false.
// A non-positive quantity removes the entry.
func (s *TillState) SetQuantity(d Denomination, quantity int64) bool {
	if !s.Profile().Has(d) {
		return false
	}
	if quantity <= 0 {
		delete(s.Counts, d)
		return true
	}
	s.Counts[d] = ClampQuantity(quantity)
	return true
}

// SetCount records a quantity typed by the cashier; unreadable input counts as 0
func (s *TillState) SetCount(d Denomination, raw string) bool {
	return s.SetQuantity(d, ParseQuantity(raw))
}

// SetRowTotal records the quantity implied by a row amount such as "3.60" for 0.20 coins.
// Returns false when the amount is not a whole number of d.
func (s *TillState) SetRowTotal(d Denomination, raw string) bool {
	quantity, ok := d.QuantityFromRowTotal(ParseAmount(raw))
	if !ok {
		return false
	}
	return s.SetQuantity(d, quantity)
}

// SetFloat records the float typed by the cashier; unreadable input is 0
func (s *TillState) SetFloat(raw string) { s.Float = ParseAmount(raw) }

// SetExpected records the expected cash-up typed by the cashier; unreadable input is 0
func (s *TillState) SetExpected(raw string) { s.Expected = ParseAmount(raw) }

// ToggleOrder flips the display order of the input rows
func (s *TillState) ToggleOrder() { s.Ascending = !s.Ascending }

// Snapshot returns an independent copy of the counts for calculation
func (s *TillState) Snapshot() Counts { return s.Counts.Clone() }

// Reset discards all edits and restores session defaults. The currency is kept.
func (s *TillState) Reset() {
	s.Counts = make(Counts)
	s.Float = s.defaultFloat
	s.Expected = decimal.Zero
	s.Ascending = true
	s.VarianceReason = ""
}
