package rules

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*VetoRule)(nil)

// VetoRule elects the candidate vetoed (ranked last) by the fewest
// voters. Each voter contributes one point to every candidate except
// their least-preferred one, so a candidate never ranked last scores
// exactly the number of voters.
type VetoRule struct {
	// name is the unique identifier for this rule instance.
	name string
	// config contains the validated configuration parameters.
	config VetoConfig
}

// VetoConfig defines the configuration parameters for the VetoRule.
type VetoConfig struct {
	// TieBreak selects the candidate ordering used when several
	// candidates share the top score.
	TieBreak TieBreakOrder `yaml:"tie_break" json:"tie_break" validate:"required,oneof=candidate_order agent"`

	// TieBreakAgent designates the voter whose ranking orders tied
	// candidates. Only consulted when TieBreak is "agent".
	TieBreakAgent domain.Voter `yaml:"tie_break_agent" json:"tie_break_agent" validate:"required_if=TieBreak agent"`
}

// NewVetoRule creates a VetoRule with the specified configuration.
// Returns an error if the name is empty or configuration validation
// fails.
func NewVetoRule(name string, config VetoConfig) (*VetoRule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &VetoRule{name: name, config: config}, nil
}

// Name returns the unique identifier for this rule instance.
func (r *VetoRule) Name() string { return r.name }

// Evaluate awards one point per voter to every candidate except the
// voter's bottom-ranked one, then elects the maximum.
func (r *VetoRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	order, err := tieBreakOrder(p, r.config.TieBreak, r.config.TieBreakAgent)
	if err != nil {
		return domain.Result{}, domain.NewRuleError(r.name, err)
	}

	step := func(p domain.Profile, v domain.Voter, t *domain.Tally) {
		last := len(p.Candidates()) - 1
		for _, c := range p.Candidates() {
			if p.Rank(c, v) != last {
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
func (r *VetoRule) Validate() error {
	if err := validate.Struct(r.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// rule's configuration struct with validation.
func (r *VetoRule) UnmarshalParameters(params yaml.Node) error {
	var config VetoConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	r.config = config
	return nil
}

// DefaultVetoConfig returns a VetoConfig with deterministic defaults.
func DefaultVetoConfig() VetoConfig {
	return VetoConfig{TieBreak: OrderCandidates}
}

// NewVetoFromConfig creates a VetoRule from a configuration map,
// following the RuleFactory pattern used by the rule registry.
func NewVetoFromConfig(id string, config map[string]any) (ports.Rule, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultVetoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewVetoRule(id, cfg)
}
