package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// CashUpMetrics groups Prometheus collectors for cash-up activity.
// A nil *CashUpMetrics is valid and records nothing.
type CashUpMetrics struct {
	Calculations *prometheus.CounterVec
	Shortfalls   *prometheus.CounterVec
	Submissions  *prometheus.CounterVec
	RPCDuration  *prometheus.HistogramVec
}

// NewCashUpMetrics registers and returns the cash-up collectors.
// A nil registerer uses prometheus.DefaultRegisterer.
func NewCashUpMetrics(namespace string, reg prometheus.Registerer) *CashUpMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &CashUpMetrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cashup_calculations_total",
			Help:      "Number of till cash-up calculations by currency.",
		}, []string{"currency"}),
		Shortfalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cashup_breakdown_shortfalls_total",
			Help:      "Bank breakdowns the counted cash could not fully cover.",
		}, []string{"currency"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cashup_submissions_total",
			Help:      "Cash-up submissions to the sheet endpoint by outcome.",
		}, []string{"result"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_ms",
			Help:      "gRPC request latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "code"}),
	}
	m.Calculations = mustRegisterCounter(reg, m.Calculations)
	m.Shortfalls = mustRegisterCounter(reg, m.Shortfalls)
	m.Submissions = mustRegisterCounter(reg, m.Submissions)
	m.RPCDuration = mustRegisterHistogram(reg, m.RPCDuration)
	return m
}

// ObserveCalculation counts one calculation and, when it fell short, one shortfall
func (m *CashUpMetrics) ObserveCalculation(currency string, shortfall bool) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(currency).Inc()
	if shortfall {
		m.Shortfalls.WithLabelValues(currency).Inc()
	}
}

// ObserveSubmission counts a submission attempt by result (ok, disabled, invalid, rejected, error)
func (m *CashUpMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}

// ObserveRPC records the latency of one gRPC call in milliseconds
func (m *CashUpMetrics) ObserveRPC(method, code string, millis float64) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(method, code).Observe(millis)
}

func mustRegisterCounter(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register counter: %w", err))
	}
	return c
}

func mustRegisterHistogram(reg prometheus.Registerer, h *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register histogram: %w", err))
	}
	return h
}
