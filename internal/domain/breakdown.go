package domain

// BreakdownLine is the quantity of one denomination selected for banking
type BreakdownLine struct {
	Denomination Denomination
	Quantity     int64
}

// Amount returns the line value in minor units
func (l BreakdownLine) Amount() int64 {
	return MulMinorUnits(int64(l.Denomination), l.Quantity)
}

// BankBreakdown is a suggested bank deposit.
// Lines are ordered largest denomination first.
// Shortfall is the part of the target, in minor units, that the counted cash could not cover.
// It is a warning, not a failure: Lines still holds the partial deposit.
type BankBreakdown struct {
	Lines     []BreakdownLine
	Shortfall int64
}

// Quantity returns the banked quantity of d, 0 when not banked
func (b BankBreakdown) Quantity(d Denomination) int64 {
	for _, l := range b.Lines {
		if l.Denomination == d {
			return l.Quantity
		}
	}
	return 0
}

// Banked returns the sum of all lines in minor units
func (b BankBreakdown) Banked() int64 {
	var sum int64
	for _, l := range b.Lines {
		sum = AddMinorUnits(sum, l.Amount())
	}
	return sum
}

// HasShortfall reports whether part of the target could not be covered
func (b BankBreakdown) HasShortfall() bool { return b.Shortfall > 0 }

// IsEmpty reports whether nothing was selected for banking
func (b BankBreakdown) IsEmpty() bool { return len(b.Lines) == 0 }

// AsMap returns the breakdown keyed by denomination
func (b BankBreakdown) AsMap() Counts {
	out := make(Counts, len(b.Lines))
	for _, l := range b.Lines {
		out[l.Denomination] = l.Quantity
	}
	return out
}
