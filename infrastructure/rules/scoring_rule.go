package rules

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*ScoringRule)(nil)

// ScoringRule is the generalized positional scoring rule: an explicit
// score vector assigns the points awarded for each rank position, index
// 0 being a voter's top choice. Plurality and Borda are the special
// cases [1,0,...,0] and [n-1,n-2,...,0].
//
// Ties are broken by a designated agent's ranking: among tied winners,
// the candidate the tie-break agent prefers is elected.
type ScoringRule struct {
	// name is the unique identifier for this rule instance.
	name string
	// config contains the validated configuration parameters.
	config ScoringConfig
}

// ScoringConfig defines the configuration parameters for the ScoringRule.
type ScoringConfig struct {
	// ScoreVector lists the points awarded per rank position, index 0 =
	// top rank. Its length must equal the candidate count of the profile
	// being evaluated; Evaluate fails with domain.ErrInvalidScoreVector
	// otherwise.
	ScoreVector []int `yaml:"score_vector" json:"score_vector" validate:"required,min=1"`

	// TieBreakAgent designates the voter whose ranking orders tied
	// candidates.
	TieBreakAgent domain.Voter `yaml:"tie_break_agent" json:"tie_break_agent" validate:"required"`
}

// NewScoringRule creates a ScoringRule with the specified configuration.
// The score vector's length is checked against the profile at evaluation
// time, since the rule does not know the candidate count up front.
func NewScoringRule(name string, config ScoringConfig) (*ScoringRule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ScoringRule{name: name, config: config}, nil
}

// Name returns the unique identifier for this rule instance.
func (r *ScoringRule) Name() string { return r.name }

// Evaluate sorts each voter's candidates by rank, awards
// ScoreVector[position] points down the ballot, and elects the maximum.
// Fails with domain.ErrInvalidScoreVector when the vector length does
// not equal the candidate count, and with domain.ErrInvalidAgent when
// the tie-break agent is not a voter.
func (r *ScoringRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	if len(r.config.ScoreVector) != len(p.Candidates()) {
		return domain.Result{}, domain.NewRuleError(r.name,
			fmt.Errorf("%w: vector=%d, candidates=%d",
				domain.ErrInvalidScoreVector, len(r.config.ScoreVector), len(p.Candidates())))
	}

	order, err := tieBreakOrder(p, OrderAgent, r.config.TieBreakAgent)
	if err != nil {
		return domain.Result{}, domain.NewRuleError(r.name, err)
	}

	vector := r.config.ScoreVector
	step := func(p domain.Profile, v domain.Voter, t *domain.Tally) {
		ballot := append([]domain.Candidate(nil), p.Candidates()...)
		sort.SliceStable(ballot, func(i, j int) bool {
			return p.Rank(ballot[i], v) < p.Rank(ballot[j], v)
		})
		for pos, c := range ballot {
			t.Add(c, vector[pos])
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
func (r *ScoringRule) Validate() error {
	if err := validate.Struct(r.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// rule's configuration struct with validation.
func (r *ScoringRule) UnmarshalParameters(params yaml.Node) error {
	var config ScoringConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	r.config = config
	return nil
}

// NewScoringFromConfig creates a ScoringRule from a configuration map,
// following the RuleFactory pattern used by the rule registry.
// There is no default configuration: the score vector and tie-break
// agent are election-specific and must be supplied.
func NewScoringFromConfig(id string, config map[string]any) (ports.Rule, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var cfg ScoringConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewScoringRule(id, cfg)
}
