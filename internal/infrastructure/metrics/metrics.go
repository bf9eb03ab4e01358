package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Nutrition bot metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrition",
			Subsystem: "bot",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nutrition",
			Subsystem: "bot",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 180},
		},
		[]string{"method", "endpoint"},
	)

	// Chat completion calls by outcome
	ChatCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrition",
			Subsystem: "bot",
			Name:      "chat_completions_total",
			Help:      "Total chat completion calls to the upstream provider",
		},
		[]string{"model", "outcome"},
	)

	ChatCompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nutrition",
			Subsystem: "bot",
			Name:      "chat_completion_duration_seconds",
			Help:      "Upstream chat completion latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 180},
		},
		[]string{"model"},
	)

	// Coercion outcomes: parsed vs fallback
	CoercionResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrition",
			Subsystem: "bot",
			Name:      "coercion_results_total",
			Help:      "Model replies by coercion result",
		},
		[]string{"operation", "result"},
	)

	LedgerAppendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrition",
			Subsystem: "bot",
			Name:      "ledger_appends_total",
			Help:      "Ledger append attempts by status",
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordChatCompletion records one upstream call
func RecordChatCompletion(model, outcome string, durationSec float64) {
	ChatCompletionsTotal.WithLabelValues(model, outcome).Inc()
	ChatCompletionDuration.WithLabelValues(model).Observe(durationSec)
}

// RecordCoercion records whether a reply parsed or fell back
func RecordCoercion(operation, result string) {
	CoercionResultsTotal.WithLabelValues(operation, result).Inc()
}

// RecordLedgerAppend records a ledger append attempt
func RecordLedgerAppend(status string) {
	LedgerAppendsTotal.WithLabelValues(status).Inc()
}
