package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/currency"
)

// DefaultCurrencyCode is the profile returned for any code the table does not know
const DefaultCurrencyCode = "NZD"

// CurrencyProfile describes the coins and notes of one currency.
// Profiles are immutable; accessors return fresh slices.
type CurrencyProfile struct {
	Code          string
	Symbol        string
	denominations []Denomination // largest first
}

// Denominations returns the face values largest first
func (p CurrencyProfile) Denominations() []Denomination {
	return p.Ordered(false)
}

// Ordered returns the face values sorted ascending or descending.
// The returned slice is newly allocated on every call.
func (p CurrencyProfile) Ordered(ascending bool) []Denomination {
	out := make([]Denomination, len(p.denominations))
	copy(out, p.denominations)
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i] < out[j]
		}
		return out[i] > out[j]
	})
	return out
}

// Has reports whether d is a legal denomination of the profile
func (p CurrencyProfile) Has(d Denomination) bool {
	for _, v := range p.denominations {
		if v == d {
			return true
		}
	}
	return false
}

// Validate ensures the profile adheres to domain rules
// Returns an error if validation fails
func (p CurrencyProfile) Validate() error {
	if len(p.Code) != 3 {
		return fmt.Errorf("currency code %q must have 3 letters", p.Code)
	}
	if p.Symbol == "" {
		return errors.New("currency symbol cannot be empty")
	}
	if len(p.denominations) == 0 {
		return errors.New("currency must have at least one denomination")
	}

	seen := make(map[Denomination]struct{}, len(p.denominations))
	for _, d := range p.denominations {
		if d <= 0 {
			return fmt.Errorf("%s denomination %s must be positive", p.Code, d)
		}
		if _, dup := seen[d]; dup {
			return fmt.Errorf("%s denomination %s is listed twice", p.Code, d)
		}
		seen[d] = struct{}{}
	}
	return nil
}

func newProfile(code, symbol string, values ...string) CurrencyProfile {
	denominations := make([]Denomination, 0, len(values))
	for _, v := range values {
		denominations = append(denominations, MustDenomination(v))
	}
	p := CurrencyProfile{Code: code, Symbol: symbol, denominations: denominations}
	p.denominations = p.Ordered(false)
	return p
}

var currencyTable = map[string]CurrencyProfile{
	"AUD": newProfile("AUD", "$", "100", "50", "20", "10", "5", "2", "1", "0.5", "0.2", "0.1", "0.05"),
	"EUR": newProfile("EUR", "€", "500", "200", "100", "50", "20", "10", "5", "2", "1", "0.5", "0.2", "0.1", "0.05", "0.02", "0.01"),
	"JPY": newProfile("JPY", "¥", "10000", "5000", "2000", "1000", "500", "100", "50", "10", "5", "1"),
	"NZD": newProfile("NZD", "$", "100", "50", "20", "10", "5", "2", "1", "0.5", "0.2", "0.1"),
	"USD": newProfile("USD", "$", "100", "50", "20", "10", "5", "2", "1", "0.5", "0.25", "0.1", "0.05", "0.01"),
}

func init() {
	for code, p := range currencyTable {
		if err := p.Validate(); err != nil {
			panic(fmt.Sprintf("currency table entry %s: %v", code, err))
		}
	}
	if _, ok := currencyTable[DefaultCurrencyCode]; !ok {
		panic("currency table is missing the default profile " + DefaultCurrencyCode)
	}
}

// LookupCurrency returns the profile for code.
// Unknown or malformed codes fall back to the NZD profile.
func LookupCurrency(code string) CurrencyProfile {
	if p, ok := findCurrency(code); ok {
		return p
	}
	return currencyTable[DefaultCurrencyCode]
}

// IsSupportedCurrency reports whether code resolves to its own profile rather than the fallback
func IsSupportedCurrency(code string) bool {
	_, ok := findCurrency(code)
	return ok
}

func findCurrency(code string) (CurrencyProfile, bool) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return CurrencyProfile{}, false
	}
	p, ok := currencyTable[unit.String()]
	return p, ok
}

// SupportedCurrencies lists every profile sorted by code
func SupportedCurrencies() []CurrencyProfile {
	out := make([]CurrencyProfile, 0, len(currencyTable))
	for _, p := range currencyTable {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
