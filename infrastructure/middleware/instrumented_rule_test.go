package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// stubRule is a configurable Rule for exercising the decorator.
type stubRule struct {
	name   string
	result domain.Result
	err    error
}

func (s *stubRule) Name() string { return s.name }

func (s *stubRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	return s.result, s.err
}

func (s *stubRule) Validate() error { return nil }

// recordedMetric captures a single collector invocation for assertions.
type recordedMetric struct {
	kind   string
	metric string
	value  float64
	labels map[string]string
}

// fakeCollector records every observation it receives.
type fakeCollector struct {
	calls []recordedMetric
}

func (f *fakeCollector) RecordLatency(operation string, d time.Duration, labels map[string]string) {
	f.calls = append(f.calls, recordedMetric{kind: "latency", metric: operation, value: d.Seconds(), labels: labels})
}

func (f *fakeCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	f.calls = append(f.calls, recordedMetric{kind: "counter", metric: metric, value: value, labels: labels})
}

func (f *fakeCollector) RecordGauge(metric string, value float64, labels map[string]string) {
	f.calls = append(f.calls, recordedMetric{kind: "gauge", metric: metric, value: value, labels: labels})
}

func (f *fakeCollector) RecordHistogram(metric string, value float64, labels map[string]string) {
	f.calls = append(f.calls, recordedMetric{kind: "histogram", metric: metric, value: value, labels: labels})
}

// statuses returns the status labels of all recorded evaluation counters.
func (f *fakeCollector) statuses() []string {
	var out []string
	for _, c := range f.calls {
		if c.kind == "counter" && c.metric == "evaluations" {
			out = append(out, c.labels["status"])
		}
	}
	return out
}

func (f *fakeCollector) kinds() map[string]int {
	out := make(map[string]int)
	for _, c := range f.calls {
		out[c.kind]++
	}
	return out
}

func instrumentedTestProfile(t *testing.T) *domain.TableProfile {
	t.Helper()
	p, err := domain.NewTableProfile(
		[]domain.Candidate{1, 2},
		[]domain.Ballot{
			{Voter: 1, Ranking: []domain.Candidate{1, 2}},
			{Voter: 2, Ranking: []domain.Candidate{2, 1}},
		},
	)
	require.NoError(t, err)
	return p
}

func TestInstrumentedRule_NamePassthrough(t *testing.T) {
	rule := NewInstrumentedRule(&stubRule{name: "plurality_main"}, nil)
	assert.Equal(t, "plurality_main", rule.Name())
}

func TestInstrumentedRule_Evaluate(t *testing.T) {
	winner := domain.Candidate(1)
	profile := instrumentedTestProfile(t)

	tests := []struct {
		name         string
		stub         *stubRule
		wantErr      bool
		wantStatuses []string
		wantRounds   bool
	}{
		{
			name: "winner outcome records success status",
			stub: &stubRule{
				name:   "borda_main",
				result: domain.Result{ID: "borda_main", Winner: &winner, WinningScore: 2},
			},
			wantStatuses: []string{"winner"},
		},
		{
			name: "no winner outcome records no_winner status",
			stub: &stubRule{
				name:   "stv_main",
				result: domain.Result{ID: "stv_main", Rounds: 1},
			},
			wantStatuses: []string{"no_winner"},
			wantRounds:   true,
		},
		{
			name:         "error outcome records error status and propagates",
			stub:         &stubRule{name: "bad_rule", err: errors.New("evaluation failed")},
			wantErr:      true,
			wantStatuses: []string{"error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := &fakeCollector{}
			rule := NewInstrumentedRule(tt.stub, collector)

			result, err := rule.Evaluate(context.Background(), profile)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.stub.result, result)
			}

			assert.Equal(t, tt.wantStatuses, collector.statuses())

			kinds := collector.kinds()
			assert.Equal(t, 2, kinds["gauge"], "should record candidate and voter gauges")
			assert.Equal(t, 1, kinds["latency"], "should record evaluation latency")
			if tt.wantRounds {
				assert.Equal(t, 1, kinds["histogram"], "should record elimination rounds")
			} else {
				assert.Zero(t, kinds["histogram"])
			}
		})
	}
}

// TestInstrumentedRule_NilCollector verifies that metric recording is
// optional and evaluation still works without a collector.
func TestInstrumentedRule_NilCollector(t *testing.T) {
	winner := domain.Candidate(2)
	rule := NewInstrumentedRule(&stubRule{
		name:   "veto_main",
		result: domain.Result{ID: "veto_main", Winner: &winner},
	}, nil)

	result, err := rule.Evaluate(context.Background(), instrumentedTestProfile(t))
	require.NoError(t, err)
	require.NotNil(t, result.Winner)
	assert.Equal(t, winner, *result.Winner)
}

func TestInstrumentedRule_Validate(t *testing.T) {
	t.Run("delegates to wrapped rule", func(t *testing.T) {
		rule := NewInstrumentedRule(&stubRule{name: "ok"}, nil)
		assert.NoError(t, rule.Validate())
	})

	t.Run("nil next rule fails", func(t *testing.T) {
		rule := &InstrumentedRule{}
		err := rule.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "next rule is required")
	})
}

// Compile-time check that the stub satisfies the Rule port.
var _ ports.Rule = (*stubRule)(nil)
var _ ports.MetricsCollector = (*fakeCollector)(nil)
