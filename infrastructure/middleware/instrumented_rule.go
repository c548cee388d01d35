package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*InstrumentedRule)(nil)

// InstrumentedRule decorates a Rule with latency/outcome metrics and an
// OpenTelemetry span per evaluation. The wrapped rule's semantics are
// unchanged; errors propagate as-is after being recorded.
type InstrumentedRule struct {
	// next is the wrapped rule.
	next ports.Rule
	// metrics receives latency, counter, and size observations.
	// A nil collector disables metric recording.
	metrics ports.MetricsCollector
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewInstrumentedRule wraps next with metrics and tracing.
func NewInstrumentedRule(next ports.Rule, metrics ports.MetricsCollector) *InstrumentedRule {
	return &InstrumentedRule{
		next:    next,
		metrics: metrics,
		tracer:  otel.Tracer("go-ballot/rules"),
	}
}

// Name returns the wrapped rule's name.
func (ir *InstrumentedRule) Name() string { return ir.next.Name() }

// Evaluate delegates to the wrapped rule, emitting a span and metric
// observations for the evaluation.
func (ir *InstrumentedRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	ctx, span := ir.tracer.Start(ctx, "Rule.Evaluate",
		trace.WithAttributes(
			attribute.String("rule.name", ir.next.Name()),
			attribute.Int("election.candidates", len(p.Candidates())),
			attribute.Int("election.voters", len(p.Voters())),
		))
	defer span.End()

	labels := map[string]string{"rule": ir.next.Name()}
	if ir.metrics != nil {
		ir.metrics.RecordGauge("candidates", float64(len(p.Candidates())), labels)
		ir.metrics.RecordGauge("voters", float64(len(p.Voters())), labels)
	}

	start := time.Now()
	result, err := ir.next.Evaluate(ctx, p)
	elapsed := time.Since(start)

	if ir.metrics != nil {
		ir.metrics.RecordLatency("evaluate", elapsed, labels)
	}

	if err != nil {
		span.RecordError(err)
		if ir.metrics != nil {
			ir.metrics.RecordCounter("evaluations", 1,
				map[string]string{"rule": ir.next.Name(), "status": "error"})
		}
		return result, err
	}

	status := "winner"
	if result.Winner == nil {
		status = "no_winner"
	} else {
		span.SetAttributes(attribute.Int("result.winner", int(*result.Winner)))
	}
	span.SetAttributes(
		attribute.String("result.status", status),
		attribute.Int("result.rounds", result.Rounds),
	)

	if ir.metrics != nil {
		ir.metrics.RecordCounter("evaluations", 1,
			map[string]string{"rule": ir.next.Name(), "status": status})
		if result.Rounds > 0 {
			ir.metrics.RecordHistogram("rounds", float64(result.Rounds), labels)
		}
	}

	return result, nil
}

// Validate checks the wrapped rule and the decorator's own wiring.
func (ir *InstrumentedRule) Validate() error {
	if ir.next == nil {
		return fmt.Errorf("instrumented rule: next rule is required")
	}
	return ir.next.Validate()
}
