// Package middleware contains the unit tests for the middleware package.
package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-ballot/internal/ports"
)

// testPrometheusMetrics provides a global instance to avoid duplicate
// metric registration issues across tests in the same package.
var testPrometheusMetrics *PrometheusMetrics

func init() {
	// Create a single PrometheusMetrics instance to be shared across all
	// tests in this package. This prevents Prometheus from panicking due
	// to duplicate metric registration.
	testPrometheusMetrics = NewPrometheusMetrics()
}

// TestNewPrometheusMetrics verifies that a new PrometheusMetrics
// instance is created with all its internal metrics properly
// initialized.
func TestNewPrometheusMetrics(t *testing.T) {
	pm := testPrometheusMetrics

	assert.NotNil(t, pm, "PrometheusMetrics instance should not be nil")
	assert.NotNil(t, pm.evaluationLatency, "evaluationLatency should be initialized")
	assert.NotNil(t, pm.evaluationCounter, "evaluationCounter should be initialized")
	assert.NotNil(t, pm.eliminationRounds, "eliminationRounds should be initialized")
	assert.NotNil(t, pm.electionSizeGauges, "electionSizeGauges should be initialized")

	// Verify that PrometheusMetrics correctly implements the
	// MetricsCollector interface.
	var _ ports.MetricsCollector = pm
}

// TestPrometheusMetrics_Record exercises each collector method with and
// without a rule label; the unknown-rule fallback must not panic.
func TestPrometheusMetrics_Record(t *testing.T) {
	pm := testPrometheusMetrics

	tests := []struct {
		name   string
		labels map[string]string
	}{
		{name: "with rule label", labels: map[string]string{"rule": "borda_main"}},
		{name: "without rule label falls back to unknown", labels: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordLatency("evaluate", 5*time.Millisecond, tt.labels)
				pm.RecordCounter("evaluations", 1, tt.labels)
				pm.RecordGauge("candidates", 3, tt.labels)
				pm.RecordHistogram("rounds", 2, tt.labels)
			})
		})
	}
}

// TestPrometheusMetrics_CounterStatus verifies that the status label is
// honored and defaults to success.
func TestPrometheusMetrics_CounterStatus(t *testing.T) {
	pm := testPrometheusMetrics

	assert.NotPanics(t, func() {
		pm.RecordCounter("evaluations", 1, map[string]string{"rule": "stv_main", "status": "no_winner"})
		pm.RecordCounter("evaluations", 1, map[string]string{"rule": "stv_main", "status": "error"})
		pm.RecordCounter("evaluations", 1, map[string]string{"rule": "stv_main"})
	})
}
