package grpc

import "encoding/json"

// CountEntry is one input row. Quantity and RowTotal are raw cashier input;
// when RowTotal is set it takes precedence and must be a whole number of the denomination.
type CountEntry struct {
	Denomination string `json:"denomination"`
	Quantity     string `json:"quantity,omitempty"`
	RowTotal     string `json:"row_total,omitempty"`
}

// CashUpRequest describes one till. An empty FloatAmount uses the configured default float;
// a nil Ascending uses the default ascending display order.
type CashUpRequest struct {
	Currency       string       `json:"currency"`
	Counts         []CountEntry `json:"counts"`
	FloatAmount    string       `json:"float_amount,omitempty"`
	ExpectedCashUp string       `json:"expected_cash_up,omitempty"`
	Ascending      *bool        `json:"ascending,omitempty"`
	VarianceReason string       `json:"variance_reason,omitempty"`
}

// BreakdownLine is one denomination selected for banking
type BreakdownLine struct {
	Denomination string `json:"denomination"`
	Quantity     int64  `json:"quantity"`
	Amount       string `json:"amount"`
}

// Row is one input row with its counted value, in display order
type Row struct {
	Denomination string `json:"denomination"`
	Quantity     int64  `json:"quantity"`
	Total        string `json:"total"`
}

// CashUpSummary is the calculated result. Amounts have two fractional digits.
type CashUpSummary struct {
	Currency       string          `json:"currency"`
	Symbol         string          `json:"symbol"`
	GrandTotal     string          `json:"grand_total"`
	FloatAmount    string          `json:"float_amount"`
	ExpectedCashUp string          `json:"expected_cash_up"`
	ActualToBank   string          `json:"actual_to_bank"`
	Discrepancy    string          `json:"discrepancy"`
	Breakdown      []BreakdownLine `json:"breakdown"`
	Shortfall      string          `json:"shortfall"`
	HasShortfall   bool            `json:"has_shortfall"`
	Rows           []Row           `json:"rows"`
	// Ignored lists input rows that were dropped: unknown denominations or uneven row totals
	Ignored []string `json:"ignored,omitempty"`
}

// GetCurrencyRequest asks for one currency profile in the given display order
type GetCurrencyRequest struct {
	Code      string `json:"code"`
	Ascending bool   `json:"ascending"`
}

// Currency is a currency profile with its denominations formatted to two digits
type Currency struct {
	Code          string   `json:"code"`
	Symbol        string   `json:"symbol"`
	Denominations []string `json:"denominations"`
	// Fallback is set when the requested code was unknown and the default profile was returned
	Fallback bool `json:"fallback,omitempty"`
}

// ListCurrenciesRequest has no fields
type ListCurrenciesRequest struct{}

// ListCurrenciesResponse lists every supported profile sorted by code, largest denomination first
type ListCurrenciesResponse struct {
	Currencies []Currency `json:"currencies"`
}

// SubmitRequest is a till to summarise and send to the sheet
type SubmitRequest struct {
	CashUpRequest
}

// SubmitResponse carries the id and flat record of a sent submission with its summary
type SubmitResponse struct {
	SubmissionID string          `json:"submission_id"`
	Record       json.RawMessage `json:"record"`
	Summary      *CashUpSummary  `json:"summary"`
}
