// Package metrics holds the Prometheus instruments for tool calls and backend requests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// DefaultDurationBuckets covers fast local backends up to slow upstream calls.
var DefaultDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	ToolCalls        *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec

	BackendRequests        *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec
}

// New creates Metrics registered against reg. Use prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memcommerce_tool_calls_total",
			Help: "Total MCP tool calls by tool and outcome",
		}, []string{"tool", "outcome"}),

		ToolCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memcommerce_tool_call_duration_seconds",
			Help:    "MCP tool call duration in seconds",
			Buckets: DefaultDurationBuckets,
		}, []string{"tool"}),

		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "memcommerce_backend_requests_total",
			Help: "Total MemCommerce API requests by method and outcome",
		}, []string{"method", "outcome"}),

		BackendRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memcommerce_backend_request_duration_seconds",
			Help:    "MemCommerce API request duration in seconds",
			Buckets: DefaultDurationBuckets,
		}, []string{"method"}),
	}
}

// RecordToolCall records one finished tool call. Nil receivers are no-ops.
func (m *Metrics) RecordToolCall(tool string, isError bool, durationSec float64) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, outcome(isError)).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(durationSec)
}

// RecordBackendRequest records one finished backend request. Nil receivers are no-ops.
func (m *Metrics) RecordBackendRequest(method string, failed bool, durationSec float64) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(method, outcome(failed)).Inc()
	m.BackendRequestDuration.WithLabelValues(method).Observe(durationSec)
}

func outcome(isError bool) string {
	if isError {
		return OutcomeError
	}
	return OutcomeSuccess
}
