package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/glouglou/cashup-backend/internal/domain"
)

// GrandTotal sums the counted cash in minor units.
// Entries with a non-positive denomination or quantity contribute nothing.
// Quantities are capped at domain.MaxQuantity and the total saturates at
// domain.MaxMinorUnits instead of wrapping.
func GrandTotal(counted domain.Counts) int64 {
	var total int64
	for d := range counted {
		total = domain.AddMinorUnits(total, domain.MulMinorUnits(d.MinorUnits(), counted.Quantity(d)))
	}
	return total
}

// Breakdown suggests which of the counted coins and notes to bank for target.
// Logic:
//  1. Nothing is banked when target <= 0
//  2. Walk the currency's denominations largest first, whatever the display order
//  3. Take as many of each as fit in what is left, capped by the counted quantity
//  4. Whatever cannot be covered is returned as Shortfall next to the partial breakdown
//
// Greedy largest-first is not exact change-making: it can report a shortfall
// even when some other combination of the counted cash sums to target
// (0.60 from 0.50x1 + 0.20x3). The result is a representative deposit.
func Breakdown(target decimal.Decimal, counted domain.Counts, profile domain.CurrencyProfile) domain.BankBreakdown {
	if target.LessThanOrEqual(decimal.Zero) {
		return domain.BankBreakdown{}
	}

	remaining := domain.ToMinorUnits(target)
	if remaining <= 0 {
		// Targets below half a cent round to nothing
		return domain.BankBreakdown{}
	}

	available := make(map[int64]int64, len(counted))
	for d := range counted {
		if q := counted.Quantity(d); q > 0 {
			available[d.MinorUnits()] = q
		}
	}

	var lines []domain.BreakdownLine
	for _, d := range profile.Ordered(false) {
		dv := d.MinorUnits()
		wanted := remaining / dv
		use := min(wanted, available[dv])
		if use > 0 {
			lines = append(lines, domain.BreakdownLine{Denomination: d, Quantity: use})
			remaining -= use * dv
		}
		if remaining <= 0 {
			break
		}
	}

	return domain.BankBreakdown{Lines: lines, Shortfall: max(remaining, 0)}
}

// RowTotal is one input row: a denomination, its counted quantity and their value
type RowTotal struct {
	Denomination domain.Denomination
	Quantity     int64
	Total        int64 // minor units
}

// RowTotals lists every denomination of profile in display order with its counted value
func RowTotals(counted domain.Counts, profile domain.CurrencyProfile, ascending bool) []RowTotal {
	denominations := profile.Ordered(ascending)
	rows := make([]RowTotal, 0, len(denominations))
	for _, d := range denominations {
		q := counted.Quantity(d)
		rows = append(rows, RowTotal{Denomination: d, Quantity: q, Total: domain.MulMinorUnits(d.MinorUnits(), q)})
	}
	return rows
}
