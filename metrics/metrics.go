package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests served by the ledger API.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "Latency of ledger API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BiltyOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_bilty_operations_total",
		Help: "Bilty create/update/delete calls by outcome.",
	}, []string{"operation", "result"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"result"})

	LedgerExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_exports_total",
		Help: "Ledger downloads by format and outcome.",
	}, []string{"format", "result"})
)

// ObserveBilty counts one bilty operation.
func ObserveBilty(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BiltyOperations.WithLabelValues(op, result).Inc()
}

// ObserveExport counts one export. result is "ok", "empty" or "error".
func ObserveExport(format, result string) {
	LedgerExports.WithLabelValues(format, result).Inc()
}
