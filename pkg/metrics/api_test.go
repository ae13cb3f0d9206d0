package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAPIMetricsCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)

	m.ObserveRequest("admin/products", "ok", 20*time.Millisecond)
	m.ObserveRequest("admin/products", "ok", 30*time.Millisecond)
	m.ObserveRequest("admin/products", "network_error", time.Second)
	m.ObserveRequest("", "ok", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("admin/products", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("admin/products", "network_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("unknown", "ok")))
}

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewAPIMetrics(nil)
	m.ObserveRequest("admin/stores", "ok", time.Millisecond)

	p := NewPollMetrics(nil)
	p.IncCycle("customer")
	p.IncFailure("customer")
}

func TestPollMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPollMetrics(reg)

	p.IncCycle("customer")
	p.IncCycle("customer")
	p.IncFailure("customer")

	assert.Equal(t, float64(2), testutil.ToFloat64(p.cycles.WithLabelValues("customer")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.failures.WithLabelValues("customer")))
}
