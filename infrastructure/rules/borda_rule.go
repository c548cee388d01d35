package rules

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*BordaRule)(nil)

// BordaRule elects the candidate with the highest Borda count: each
// voter awards n-1 points to their top-ranked candidate, n-2 to the
// next, down to 0 for their least-preferred one.
type BordaRule struct {
	// name is the unique identifier for this rule instance.
	name string
	// config contains the validated configuration parameters.
	config BordaConfig
}

// BordaConfig defines the configuration parameters for the BordaRule.
type BordaConfig struct {
	// TieBreak selects the candidate ordering used when several
	// candidates share the top score.
	TieBreak TieBreakOrder `yaml:"tie_break" json:"tie_break" validate:"required,oneof=candidate_order agent"`

	// TieBreakAgent designates the voter whose ranking orders tied
	// candidates. Only consulted when TieBreak is "agent".
	TieBreakAgent domain.Voter `yaml:"tie_break_agent" json:"tie_break_agent" validate:"required_if=TieBreak agent"`
}

// NewBordaRule creates a BordaRule with the specified configuration.
// Returns an error if the name is empty or configuration validation
// fails.
func NewBordaRule(name string, config BordaConfig) (*BordaRule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &BordaRule{name: name, config: config}, nil
}

// Name returns the unique identifier for this rule instance.
func (r *BordaRule) Name() string { return r.name }

// Evaluate awards (n-1)-rank points per voter to every candidate and
// elects the maximum.
func (r *BordaRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	order, err := tieBreakOrder(p, r.config.TieBreak, r.config.TieBreakAgent)
	if err != nil {
		return domain.Result{}, domain.NewRuleError(r.name, err)
	}

	step := func(p domain.Profile, v domain.Voter, t *domain.Tally) {
		top := len(p.Candidates()) - 1
		for _, c := range p.Candidates() {
			t.Add(c, top-p.Rank(c, v))
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
func (r *BordaRule) Validate() error {
	if err := validate.Struct(r.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// rule's configuration struct with validation.
func (r *BordaRule) UnmarshalParameters(params yaml.Node) error {
	var config BordaConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	r.config = config
	return nil
}

// DefaultBordaConfig returns a BordaConfig with deterministic defaults.
func DefaultBordaConfig() BordaConfig {
	return BordaConfig{TieBreak: OrderCandidates}
}

// NewBordaFromConfig creates a BordaRule from a configuration map,
// following the RuleFactory pattern used by the rule registry.
func NewBordaFromConfig(id string, config map[string]any) (ports.Rule, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultBordaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewBordaRule(id, cfg)
}
