package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		paymentsTotal,
		PaymentVerifyRequests,
		PaymentVerifyDuration,
	)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payments by status (order_created/succeeded/failed/duplicate).",
		},
		[]string{"status"},
	)

	// Count of signature verification attempts grouped by result and bounded reason.
	// result: ok|fail
	// reason (fail only): bad_signature|bad_json|unknown_plan|no_active_plan|
	// unauthorized|lock_contention|storage_error
	PaymentVerifyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verify_requests_total",
			Help: "Count of payment verification attempts by result and reason.",
		},
		[]string{"result", "reason"},
	)

	// Latency of purchase/renew confirmation handlers grouped by result.
	PaymentVerifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_verify_duration_seconds",
			Help:    "Duration of payment confirmation handlers in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(norm(status)).Inc()
}

func IncVerify(result, reason string) {
	PaymentVerifyRequests.WithLabelValues(norm(result), norm(reason)).Inc()
}
