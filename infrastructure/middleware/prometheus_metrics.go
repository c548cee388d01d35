// Package middleware provides cross-cutting concerns for the election engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-ballot/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of rule evaluations,
// outcomes, and election sizes for the election engine.
type PrometheusMetrics struct {
	evaluationLatency  *prometheus.HistogramVec
	evaluationCounter  *prometheus.CounterVec
	eliminationRounds  *prometheus.HistogramVec
	electionSizeGauges *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and
// registers all required metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		evaluationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rule_evaluation_duration_seconds",
				Help:    "Execution time of rule evaluations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "rule"},
		),
		evaluationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rule_evaluations_total",
				Help: "Total number of rule evaluations by outcome.",
			},
			[]string{"operation", "status", "rule"},
		),
		eliminationRounds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rule_elimination_rounds",
				Help:    "Distribution of elimination round counts per evaluation.",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"metric", "rule"},
		),
		electionSizeGauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "election_size",
				Help: "Current election dimensions (candidates, voters) per rule.",
			},
			[]string{"metric", "rule"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// evaluation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	rule, ok := labels["rule"]
	if !ok {
		rule = "unknown"
	}
	pm.evaluationLatency.WithLabelValues(operation, rule).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	rule, ok := labels["rule"]
	if !ok {
		rule = "unknown"
	}

	status, ok := labels["status"]
	if !ok {
		status = "success"
	}
	pm.evaluationCounter.WithLabelValues(metric, status, rule).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	rule, ok := labels["rule"]
	if !ok {
		rule = "unknown"
	}
	pm.electionSizeGauges.WithLabelValues(metric, rule).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	rule, ok := labels["rule"]
	if !ok {
		rule = "unknown"
	}
	pm.eliminationRounds.WithLabelValues(metric, rule).Observe(value)
}
