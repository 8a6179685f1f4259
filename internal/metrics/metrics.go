// Package metrics holds Prometheus instrumentation for SatuSehat API
// calls and the serve-mode HTTP surface.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APICallsTotal tracks outbound calls to the SatuSehat API
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satusehat_api_calls_total",
			Help: "Total number of calls to the SatuSehat API",
		},
		[]string{"operation", "status"}, // "token", "Patient", "Practitioner" x "success", "error"
	)

	// APICallDuration tracks outbound call duration
	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "satusehat_api_call_duration_seconds",
			Help:    "Duration of SatuSehat API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// HTTPRequestsTotal tracks serve-mode HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration tracks serve-mode HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPActiveConnections tracks in-flight serve-mode requests
	HTTPActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// RecordAPICall records the outcome of a SatuSehat API call
func RecordAPICall(operation, status string) {
	APICallsTotal.WithLabelValues(operation, status).Inc()
}

// RecordAPICallDuration records the duration of a SatuSehat API call
func RecordAPICallDuration(operation string, duration time.Duration) {
	APICallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records metrics for a serve-mode HTTP request
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)

	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// IncActiveConnections increments the active connection gauge
func IncActiveConnections() {
	HTTPActiveConnections.Inc()
}

// DecActiveConnections decrements the active connection gauge
func DecActiveConnections() {
	HTTPActiveConnections.Dec()
}
