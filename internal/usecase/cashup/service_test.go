package cashup

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/glouglou/cashup-backend/internal/domain"
	"github.com/glouglou/cashup-backend/internal/obs"
)

// MockSubmitter is a mock implementation of Submitter for testing
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Send(ctx context.Context, submission domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func d(value string) domain.Denomination { return domain.MustDenomination(value) }

func newTestService(t *testing.T, submitter domain.Submitter, logs *bytes.Buffer) (*CashUpService, *obs.CashUpMetrics) {
	t.Helper()
	metrics := obs.NewCashUpMetrics("test", prometheus.NewRegistry())
	clock := fixedClock{t: time.Date(2026, 10, 14, 17, 0, 0, 0, time.UTC)}
	return NewCashUpService(submitter, clock, zerolog.New(logs), metrics), metrics
}

// nzdTill counts 330.50 against a 200 float and a 130 expected cash-up
func nzdTill() *domain.TillState {
	state := domain.NewTillState("NZD", decimal.Zero)
	state.SetQuantity(d("100"), 3)
	state.SetQuantity(d("20"), 1)
	state.SetQuantity(d("5"), 2)
	state.SetQuantity(d("0.1"), 5)
	state.SetExpected("130")
	return state
}

func TestSummarize_TotalsAndBreakdown(t *testing.T) {
	var logs bytes.Buffer
	service, metrics := newTestService(t, nil, &logs)

	summary := service.Summarize(nzdTill())

	assert.Equal(t, "NZD", summary.Profile.Code)
	assert.Equal(t, int64(33050), summary.GrandTotal)
	assert.Equal(t, int64(20000), summary.Float)
	assert.Equal(t, int64(13000), summary.Expected)
	assert.Equal(t, int64(13050), summary.ActualToBank)
	assert.Equal(t, int64(50), summary.Discrepancy)

	assert.Equal(t, []domain.BreakdownLine{
		{Denomination: d("100"), Quantity: 1},
		{Denomination: d("20"), Quantity: 1},
		{Denomination: d("5"), Quantity: 2},
		{Denomination: d("0.1"), Quantity: 5},
	}, summary.Breakdown.Lines)
	assert.Equal(t, int64(0), summary.Breakdown.Shortfall)

	require.Len(t, summary.Rows, 10)
	assert.Equal(t, d("0.1"), summary.Rows[0].Denomination, "default display is ascending")

	assert.Empty(t, logs.String(), "no warning without shortfall")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calculations.WithLabelValues("NZD")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Shortfalls.WithLabelValues("NZD")))
}

func TestSummarize_ShortfallIsWarningNotError(t *testing.T) {
	var logs bytes.Buffer
	service, metrics := newTestService(t, nil, &logs)

	state := domain.NewTillState("NZD", decimal.NewFromInt(1))
	state.SetQuantity(d("1"), 1)
	state.SetQuantity(d("0.1"), 1)
	state.SetFloat("0.90")
	// 1.10 counted and 0.20 to bank, but there is only one 0.10 coin

	summary := service.Summarize(state)

	assert.Equal(t, int64(20), summary.ActualToBank)
	assert.Equal(t, domain.Counts{d("0.1"): 1}, summary.Breakdown.AsMap())
	assert.Equal(t, int64(10), summary.Breakdown.Shortfall)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"shortfall":"0.10"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Shortfalls.WithLabelValues("NZD")))
}

func TestSummarize_NothingToBank(t *testing.T) {
	var logs bytes.Buffer
	service, _ := newTestService(t, nil, &logs)

	state := domain.NewTillState("AUD", decimal.Zero)
	state.SetQuantity(d("50"), 3)

	summary := service.Summarize(state)

	assert.Equal(t, int64(15000), summary.GrandTotal)
	assert.Equal(t, int64(-5000), summary.ActualToBank)
	assert.Equal(t, int64(-5000), summary.Discrepancy)
	assert.True(t, summary.Breakdown.IsEmpty())
	assert.Equal(t, int64(0), summary.Breakdown.Shortfall)
}

func TestSummarize_DisplayOrderDoesNotChangeBreakdown(t *testing.T) {
	var logs bytes.Buffer
	service, _ := newTestService(t, nil, &logs)

	asc := nzdTill()
	desc := nzdTill()
	desc.ToggleOrder()

	a := service.Summarize(asc)
	b := service.Summarize(desc)

	assert.Equal(t, a.Breakdown, b.Breakdown)
	assert.Equal(t, d("0.1"), a.Rows[0].Denomination)
	assert.Equal(t, d("100"), b.Rows[0].Denomination)
}

func TestSubmit_Success(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	mockSubmitter := new(MockSubmitter)
	service, metrics := newTestService(t, mockSubmitter, &logs)

	state := nzdTill()
	state.VarianceReason = "found 50c under the drawer"

	mockSubmitter.On("Send", ctx, mock.MatchedBy(func(s domain.Submission) bool {
		return s.Date == "14/10/2026" &&
			s.Currency == "NZD" &&
			s.GrandTotal == "330.50" &&
			s.ExpectedCashUp == "130.00" &&
			s.FloatAmount == "200.00" &&
			s.ActualToBank == "130.50" &&
			s.Discrepancy == "0.50" &&
			s.VarianceReason == "found 50c under the drawer" &&
			len(s.Banked) == 10
	})).Return(nil).Once()

	receipt, err := service.Submit(ctx, state)

	require.NoError(t, err)
	assert.Equal(t, int64(1), receipt.Submission.Banked[0].Quantity, "one 100 note banked")
	assert.Equal(t, int64(13050), receipt.Summary.ActualToBank)
	assert.Contains(t, logs.String(), "cash-up submitted")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Submissions.WithLabelValues("ok")))
	mockSubmitter.AssertExpectations(t)
}

func TestSubmit_Disabled(t *testing.T) {
	var logs bytes.Buffer
	service, metrics := newTestService(t, nil, &logs)

	receipt, err := service.Submit(context.Background(), nzdTill())

	assert.ErrorIs(t, err, domain.ErrSubmissionDisabled)
	assert.Equal(t, "330.50", receipt.Submission.GrandTotal)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Submissions.WithLabelValues("disabled")))
}

func TestSubmit_SendFailure(t *testing.T) {
	tests := []struct {
		name       string
		sendErr    error
		wantResult string
	}{
		{
			name:       "rejected by endpoint",
			sendErr:    errors.Join(domain.ErrSubmissionRejected, errors.New("status 500")),
			wantResult: "rejected",
		},
		{
			name:       "transport failure",
			sendErr:    errors.New("connection refused"),
			wantResult: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			var logs bytes.Buffer
			mockSubmitter := new(MockSubmitter)
			service, metrics := newTestService(t, mockSubmitter, &logs)

			mockSubmitter.On("Send", ctx, mock.Anything).Return(tt.sendErr).Once()

			_, err := service.Submit(ctx, nzdTill())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sendErr)
			assert.Contains(t, err.Error(), "failed to send submission")
			assert.Contains(t, logs.String(), `"level":"error"`)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Submissions.WithLabelValues(tt.wantResult)))
			mockSubmitter.AssertExpectations(t)
		})
	}
}
