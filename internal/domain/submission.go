package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SubmissionDateLayout is the dd/mm/yyyy date format of the cash-up sheet
const SubmissionDateLayout = "02/01/2006"

var validate = validator.New(validator.WithRequiredStructEnabled())

// DenominationCount is the banked quantity of one denomination in a submission
type DenominationCount struct {
	Denomination Denomination `validate:"gt=0"`
	Quantity     int64        `validate:"gte=0"`
}

// Submission is the flat cash-up record sent to the sheet.
// Amounts are pre-formatted with two fractional digits.
type Submission struct {
	ID             uuid.UUID `validate:"required"`
	Date           string    `validate:"required"`
	Currency       string    `validate:"required,len=3,uppercase"`
	GrandTotal     string    `validate:"required,numeric"`
	ExpectedCashUp string    `validate:"required,numeric"`
	FloatAmount    string    `validate:"required,numeric"`
	ActualToBank   string    `validate:"required,numeric"`
	Discrepancy    string    `validate:"required,numeric"`
	VarianceReason string    `validate:"max=2000"`
	// Banked holds one entry per denomination of the currency, largest first
	Banked []DenominationCount `validate:"required,min=1,dive"`
}

// SubmissionInput carries the figures a submission is built from
type SubmissionInput struct {
	Profile        CurrencyProfile
	Date           time.Time
	GrandTotal     int64
	Expected       int64
	Float          int64
	ActualToBank   int64
	Discrepancy    int64
	VarianceReason string
	Breakdown      BankBreakdown
}

// NewSubmission builds the flat record.
// Every denomination of the profile gets a count field, 0 when it was not banked.
func NewSubmission(in SubmissionInput) Submission {
	denominations := in.Profile.Denominations()
	banked := make([]DenominationCount, 0, len(denominations))
	for _, d := range denominations {
		banked = append(banked, DenominationCount{Denomination: d, Quantity: in.Breakdown.Quantity(d)})
	}

	return Submission{
		ID:             uuid.New(),
		Date:           in.Date.Format(SubmissionDateLayout),
		Currency:       in.Profile.Code,
		GrandTotal:     FormatMinorUnits(in.GrandTotal),
		ExpectedCashUp: FormatMinorUnits(in.Expected),
		FloatAmount:    FormatMinorUnits(in.Float),
		ActualToBank:   FormatMinorUnits(in.ActualToBank),
		Discrepancy:    FormatMinorUnits(in.Discrepancy),
		VarianceReason: in.VarianceReason,
		Banked:         banked,
	}
}

// Validate ensures the submission adheres to domain rules
// Returns an error wrapping ErrInvalidSubmission if validation fails
func (s Submission) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	return nil
}

// CountKey returns the sheet column name for a denomination, e.g. "0.50_count"
func CountKey(d Denomination) string {
	return d.String() + "_count"
}

// MarshalJSON writes the record with the column order the sheet expects.
// The ID is not part of the record.
func (s Submission) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	write := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	fields := []struct {
		key   string
		value any
	}{
		{"Date", s.Date},
		{"Currency", s.Currency},
		{"Grand_Total", s.GrandTotal},
		{"Expected_Cash_Up", s.ExpectedCashUp},
		{"Float_Amount", s.FloatAmount},
		{"Actual_To_Bank", s.ActualToBank},
		{"Discrepancy", s.Discrepancy},
		{"Variance_Reason", s.VarianceReason},
	}
	for _, f := range fields {
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	for _, c := range s.Banked {
		if err := write(CountKey(c.Denomination), c.Quantity); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
