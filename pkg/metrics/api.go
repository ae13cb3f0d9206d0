package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records backend request outcomes per endpoint.
type APIMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewAPIMetrics registers the request metrics on the provided registerer.
// A nil registerer yields a no-op collector, which tests rely on.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_api_request_duration_seconds",
		Help:    "Duration of admin backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_api_requests_total",
		Help: "Admin backend requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	reg.MustRegister(duration, requests)
	return &APIMetrics{
		duration: duration,
		requests: requests,
	}
}

// ObserveRequest records one completed request.
func (m *APIMetrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(endpoint)).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(outcome)).Inc()
}

// PollMetrics records chat poll cycles.
type PollMetrics struct {
	cycles   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewPollMetrics registers the poller metrics on the provided registerer.
func NewPollMetrics(reg prometheus.Registerer) *PollMetrics {
	if reg == nil {
		return &PollMetrics{}
	}
	cycles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_poll_cycles_total",
		Help: "Completed chat poll cycles.",
	}, []string{"panel"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_poll_failures_total",
		Help: "Chat poll cycles that ended in error.",
	}, []string{"panel"})
	reg.MustRegister(cycles, failures)
	return &PollMetrics{cycles: cycles, failures: failures}
}

// IncCycle increments the cycle counter for the named panel.
func (m *PollMetrics) IncCycle(panel string) {
	if m == nil || m.cycles == nil {
		return
	}
	m.cycles.WithLabelValues(normalizeLabel(panel)).Inc()
}

// IncFailure increments the failure counter for the named panel.
func (m *PollMetrics) IncFailure(panel string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(panel)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
