package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/glouglou/cashup-backend/internal/domain"
	"github.com/glouglou/cashup-backend/internal/usecase/cashup"
)

// Server implements the CashUpService gRPC server
type Server struct {
	CashUpService   *cashup.CashUpService
	DefaultCurrency string
	DefaultFloat    decimal.Decimal
}

// NewServer creates a new gRPC server instance.
// Requests without a currency or float fall back to defaultCurrency and defaultFloat.
func NewServer(cashUpService *cashup.CashUpService, defaultCurrency string, defaultFloat decimal.Decimal) *Server {
	return &Server{
		CashUpService:   cashUpService,
		DefaultCurrency: defaultCurrency,
		DefaultFloat:    defaultFloat,
	}
}

// GetCurrency handles the GetCurrency RPC. Unknown codes return the default profile.
func (s *Server) GetCurrency(ctx context.Context, req *GetCurrencyRequest) (*Currency, error) {
	profile := domain.LookupCurrency(req.Code)
	out := toCurrency(profile, req.Ascending)
	out.Fallback = !domain.IsSupportedCurrency(req.Code)
	return out, nil
}

// ListCurrencies handles the ListCurrencies RPC
func (s *Server) ListCurrencies(ctx context.Context, req *ListCurrenciesRequest) (*ListCurrenciesResponse, error) {
	profiles := domain.SupportedCurrencies()
	resp := &ListCurrenciesResponse{Currencies: make([]Currency, 0, len(profiles))}
	for _, p := range profiles {
		resp.Currencies = append(resp.Currencies, *toCurrency(p, false))
	}
	return resp, nil
}

// Calculate handles the Calculate RPC
func (s *Server) Calculate(ctx context.Context, req *CashUpRequest) (*CashUpSummary, error) {
	state, ignored := s.buildTill(req)
	summary := s.CashUpService.Summarize(state)
	return toSummary(summary, ignored), nil
}

// Submit handles the Submit RPC
func (s *Server) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	state, ignored := s.buildTill(&req.CashUpRequest)

	receipt, err := s.CashUpService.Submit(ctx, state)
	if err != nil {
		return nil, mapError(err)
	}

	record, err := json.Marshal(receipt.Submission)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode submission: %v", err)
	}

	return &SubmitResponse{
		SubmissionID: receipt.Submission.ID.String(),
		Record:       record,
		Summary:      toSummary(receipt.Summary, ignored),
	}, nil
}

// buildTill replays a request onto a fresh till session.
// Rows that the session refuses are returned by their raw denomination.
func (s *Server) buildTill(req *CashUpRequest) (*domain.TillState, []string) {
	code := strings.TrimSpace(req.Currency)
	if code == "" {
		code = s.DefaultCurrency
	}

	state := domain.NewTillState(code, s.DefaultFloat)
	state.Float = s.DefaultFloat
	if strings.TrimSpace(req.FloatAmount) != "" {
		state.SetFloat(req.FloatAmount)
	}
	state.SetExpected(req.ExpectedCashUp)
	if req.Ascending != nil {
		state.Ascending = *req.Ascending
	}
	state.VarianceReason = req.VarianceReason

	var ignored []string
	for _, entry := range req.Counts {
		d := domain.NewDenomination(domain.ParseAmount(entry.Denomination))

		var ok bool
		if strings.TrimSpace(entry.RowTotal) != "" {
			ok = state.SetRowTotal(d, entry.RowTotal)
		} else {
			ok = state.SetCount(d, entry.Quantity)
		}
		if !ok {
			ignored = append(ignored, entry.Denomination)
		}
	}
	return state, ignored
}

func toCurrency(profile domain.CurrencyProfile, ascending bool) *Currency {
	ordered := profile.Ordered(ascending)
	values := make([]string, 0, len(ordered))
	for _, d := range ordered {
		values = append(values, d.String())
	}
	return &Currency{
		Code:          profile.Code,
		Symbol:        profile.Symbol,
		Denominations: values,
	}
}

func toSummary(summary cashup.Summary, ignored []string) *CashUpSummary {
	out := &CashUpSummary{
		Currency:       summary.Profile.Code,
		Symbol:         summary.Profile.Symbol,
		GrandTotal:     domain.FormatMinorUnits(summary.GrandTotal),
		FloatAmount:    domain.FormatMinorUnits(summary.Float),
		ExpectedCashUp: domain.FormatMinorUnits(summary.Expected),
		ActualToBank:   domain.FormatMinorUnits(summary.ActualToBank),
		Discrepancy:    domain.FormatMinorUnits(summary.Discrepancy),
		Breakdown:      make([]BreakdownLine, 0, len(summary.Breakdown.Lines)),
		Shortfall:      domain.FormatMinorUnits(summary.Breakdown.Shortfall),
		HasShortfall:   summary.Breakdown.HasShortfall(),
		Rows:           make([]Row, 0, len(summary.Rows)),
		Ignored:        ignored,
	}
	for _, line := range summary.Breakdown.Lines {
		out.Breakdown = append(out.Breakdown, BreakdownLine{
			Denomination: line.Denomination.String(),
			Quantity:     line.Quantity,
			Amount:       domain.FormatMinorUnits(line.Amount()),
		})
	}
	for _, row := range summary.Rows {
		out.Rows = append(out.Rows, Row{
			Denomination: row.Denomination.String(),
			Quantity:     row.Quantity,
			Total:        domain.FormatMinorUnits(row.Total),
		})
	}
	return out
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, domain.ErrInvalidSubmission):
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	case errors.Is(err, domain.ErrSubmissionDisabled):
		return status.Errorf(codes.FailedPrecondition, "%s", errorMsg)
	case errors.Is(err, domain.ErrSubmissionRejected):
		return status.Errorf(codes.Unavailable, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
