package rules

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*DictatorshipRule)(nil)

// DictatorshipRule elects whichever candidate the designated agent ranks
// first. It bypasses scoring and tie-breaking entirely: the bijection
// invariant guarantees the agent has exactly one top-ranked candidate.
type DictatorshipRule struct {
	// name is the unique identifier for this rule instance.
	name string
	// config contains the validated configuration parameters.
	config DictatorshipConfig
}

// DictatorshipConfig defines the configuration parameters for the
// DictatorshipRule.
type DictatorshipConfig struct {
	// Agent designates the dictating voter. Evaluate fails with
	// domain.ErrInvalidAgent when the agent is not in the profile's
	// voter set.
	Agent domain.Voter `yaml:"agent" json:"agent" validate:"required"`
}

// NewDictatorshipRule creates a DictatorshipRule with the specified
// configuration. Returns an error if the name is empty or configuration
// validation fails.
func NewDictatorshipRule(name string, config DictatorshipConfig) (*DictatorshipRule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &DictatorshipRule{name: name, config: config}, nil
}

// Name returns the unique identifier for this rule instance.
func (r *DictatorshipRule) Name() string { return r.name }

// Evaluate returns the agent's rank-0 candidate by direct lookup.
// Fails with domain.ErrNoTopChoice if no candidate holds rank 0 for the
// agent, which can only happen when the ranking invariant is broken.
func (r *DictatorshipRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	if !isVoter(p, r.config.Agent) {
		return domain.Result{}, domain.NewRuleError(r.name,
			fmt.Errorf("%w: agent %d", domain.ErrInvalidAgent, r.config.Agent))
	}

	for _, c := range p.Candidates() {
		if p.Rank(c, r.config.Agent) == 0 {
			winner := c
			return domain.Result{
				ID:     fmt.Sprintf("%s_result", r.name),
				Winner: &winner,
			}, nil
		}
	}

	return domain.Result{}, domain.NewRuleError(r.name,
		fmt.Errorf("%w: agent %d", domain.ErrNoTopChoice, r.config.Agent))
}

// Validate checks if the rule is properly configured and ready for
// evaluation.
func (r *DictatorshipRule) Validate() error {
	if err := validate.Struct(r.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// rule's configuration struct with validation.
func (r *DictatorshipRule) UnmarshalParameters(params yaml.Node) error {
	var config DictatorshipConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	r.config = config
	return nil
}

// NewDictatorshipFromConfig creates a DictatorshipRule from a
// configuration map, following the RuleFactory pattern used by the rule
// registry. The agent is election-specific and must be supplied.
func NewDictatorshipFromConfig(id string, config map[string]any) (ports.Rule, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var cfg DictatorshipConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewDictatorshipRule(id, cfg)
}
