package rules

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*PluralityRule)(nil)

// PluralityRule elects the candidate ranked first by the most voters.
// Each voter contributes one point to their top-ranked candidate; the
// bijection invariant guarantees exactly one such candidate per voter.
// The rule is stateless and thread-safe for concurrent evaluation.
type PluralityRule struct {
	// name is the unique identifier for this rule instance.
	name string
	// config contains the validated configuration parameters.
	config PluralityConfig
}

// PluralityConfig defines the configuration parameters for the
// PluralityRule. All fields are validated during rule creation and
// parameter unmarshaling.
type PluralityConfig struct {
	// TieBreak selects the candidate ordering used when several
	// candidates share the top score.
	// Options: "candidate_order" (natural enumeration), "agent"
	// (a designated voter's ranking).
	TieBreak TieBreakOrder `yaml:"tie_break" json:"tie_break" validate:"required,oneof=candidate_order agent"`

	// TieBreakAgent designates the voter whose ranking orders tied
	// candidates. Only consulted when TieBreak is "agent".
	TieBreakAgent domain.Voter `yaml:"tie_break_agent" json:"tie_break_agent" validate:"required_if=TieBreak agent"`
}

// NewPluralityRule creates a PluralityRule with the specified
// configuration. Returns an error if the name is empty or configuration
// validation fails.
func NewPluralityRule(name string, config PluralityConfig) (*PluralityRule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &PluralityRule{name: name, config: config}, nil
}

// Name returns the unique identifier for this rule instance.
func (r *PluralityRule) Name() string { return r.name }

// Evaluate counts first-place ballots for every candidate and elects the
// maximum, breaking ties by the configured ordering.
func (r *PluralityRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	order, err := tieBreakOrder(p, r.config.TieBreak, r.config.TieBreakAgent)
	if err != nil {
		return domain.Result{}, domain.NewRuleError(r.name, err)
	}

	step := func(p domain.Profile, v domain.Voter, t *domain.Tally) {
		for _, c := range p.Candidates() {
			if p.Rank(c, v) == 0 {
				t.Add(c, 1)
			}
		}
	}

	winner, tally, winners, err := calculatePoints(p, order, step)
	if err != nil {
		return domain.Result{}, domain.NewRuleError(r.name, err)
	}
	return scoreResult(r.name, winner, tally, winners), nil
}

// Validate checks if the rule is properly configured and ready for
// evaluation.
func (r *PluralityRule) Validate() error {
	if err := validate.Struct(r.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// rule's configuration struct with validation.
func (r *PluralityRule) UnmarshalParameters(params yaml.Node) error {
	var config PluralityConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	r.config = config
	return nil
}

// DefaultPluralityConfig returns a PluralityConfig with deterministic
// defaults: ties go to the first candidate in enumeration order.
func DefaultPluralityConfig() PluralityConfig {
	return PluralityConfig{TieBreak: OrderCandidates}
}

// NewPluralityFromConfig creates a PluralityRule from a configuration
// map, following the RuleFactory pattern used by the rule registry.
func NewPluralityFromConfig(id string, config map[string]any) (ports.Rule, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultPluralityConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewPluralityRule(id, cfg)
}
