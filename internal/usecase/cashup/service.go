package cashup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/glouglou/cashup-backend/internal/domain"
	"github.com/glouglou/cashup-backend/internal/obs"
	"github.com/glouglou/cashup-backend/internal/usecase/calculator"
)

// Summary is the result of one cash-up calculation. Amounts are in minor units.
type Summary struct {
	Profile      domain.CurrencyProfile
	GrandTotal   int64
	Float        int64
	Expected     int64
	ActualToBank int64 // GrandTotal - Float
	Discrepancy  int64 // GrandTotal - Expected - Float
	Breakdown    domain.BankBreakdown
	Rows         []calculator.RowTotal
}

// Receipt is the result of a submission attempt
type Receipt struct {
	Summary    Summary
	Submission domain.Submission
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CashUpService handles till cash-up calculation and submission
type CashUpService struct {
	Submitter domain.Submitter
	Clock     domain.Clock
	Logger    zerolog.Logger
	Metrics   *obs.CashUpMetrics
}

// NewCashUpService creates a new CashUpService instance.
// A nil submitter disables Submit; a nil clock uses the system clock.
func NewCashUpService(
	submitter domain.Submitter,
	clock domain.Clock,
	logger zerolog.Logger,
	metrics *obs.CashUpMetrics,
) *CashUpService {
	if clock == nil {
		clock = systemClock{}
	}
	return &CashUpService{
		Submitter: submitter,
		Clock:     clock,
		Logger:    logger,
		Metrics:   metrics,
	}
}

// Summarize computes the totals and bank breakdown for a till.
// Logic:
//  1. Grand total of the counted cash
//  2. Actual to bank = total - float; discrepancy = total - expected - float
//  3. Greedy breakdown of the actual to bank against the counted cash
//
// A shortfall is logged as a warning and returned, never treated as an error.
func (s *CashUpService) Summarize(state *domain.TillState) Summary {
	profile := state.Profile()
	counted := state.Snapshot()

	total := calculator.GrandTotal(counted)
	floatAmount := domain.ToMinorUnits(state.Float)
	expected := domain.ToMinorUnits(state.Expected)
	actualToBank := total - floatAmount
	discrepancy := total - expected - floatAmount

	breakdown := calculator.Breakdown(domain.FromMinorUnits(actualToBank), counted, profile)
	if breakdown.HasShortfall() {
		s.Logger.Warn().
			Str("currency", profile.Code).
			Str("actual_to_bank", domain.FormatMinorUnits(actualToBank)).
			Str("shortfall", domain.FormatMinorUnits(breakdown.Shortfall)).
			Msg("breakdown missed amount due to denomination shortage")
	}
	s.Metrics.ObserveCalculation(profile.Code, breakdown.HasShortfall())

	return Summary{
		Profile:      profile,
		GrandTotal:   total,
		Float:        floatAmount,
		Expected:     expected,
		ActualToBank: actualToBank,
		Discrepancy:  discrepancy,
		Breakdown:    breakdown,
		Rows:         calculator.RowTotals(counted, profile, state.Ascending),
	}
}

// Submit summarises the till and sends the flat record to the sheet.
// The returned receipt is populated even when sending fails.
func (s *CashUpService) Submit(ctx context.Context, state *domain.TillState) (Receipt, error) {
	summary := s.Summarize(state)
	submission := domain.NewSubmission(domain.SubmissionInput{
		Profile:        summary.Profile,
		Date:           s.Clock.Now(),
		GrandTotal:     summary.GrandTotal,
		Expected:       summary.Expected,
		Float:          summary.Float,
		ActualToBank:   summary.ActualToBank,
		Discrepancy:    summary.Discrepancy,
		VarianceReason: state.VarianceReason,
		Breakdown:      summary.Breakdown,
	})
	receipt := Receipt{Summary: summary, Submission: submission}

	logger := s.Logger.With().
		Str("submission_id", submission.ID.String()).
		Str("currency", submission.Currency).
		Logger()

	if err := submission.Validate(); err != nil {
		s.Metrics.ObserveSubmission("invalid")
		return receipt, err
	}

	if s.Submitter == nil {
		s.Metrics.ObserveSubmission("disabled")
		return receipt, domain.ErrSubmissionDisabled
	}

	if err := s.Submitter.Send(ctx, submission); err != nil {
		result := "error"
		if errors.Is(err, domain.ErrSubmissionRejected) {
			result = "rejected"
		}
		s.Metrics.ObserveSubmission(result)
		logger.Error().Err(err).Msg("send cash-up submission")
		return receipt, fmt.Errorf("failed to send submission: %w", err)
	}

	s.Metrics.ObserveSubmission("ok")
	logger.Info().
		Str("grand_total", submission.GrandTotal).
		Str("actual_to_bank", submission.ActualToBank).
		Str("discrepancy", submission.Discrepancy).
		Msg("cash-up submitted")
	return receipt, nil
}
