package rules

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Rule = (*STVRule)(nil)

// STVRule implements single transferable vote by iterative elimination:
// each round counts first-place ballots for the remaining candidates and
// removes every candidate holding the minimum count, looping until one
// candidate remains.
//
// Counting uses a voter's original rank-0 choice in every round; ballots
// are not re-ranked against the surviving candidates after eliminations.
// A round in which all remaining candidates tie at the minimum
// eliminates them simultaneously, producing a result with no winner.
//
// The elimination set is an ordered structure, so elimination order and
// the final result are reproducible across runs and platforms.
type STVRule struct {
	// name is the unique identifier for this rule instance.
	name string
	// config contains the validated configuration parameters.
	config STVConfig
}

// STVConfig defines the configuration parameters for the STVRule.
// STV takes no tunable parameters: elimination is fully determined by
// the profile. The struct exists so the rule participates in the same
// configuration surface as the others.
type STVConfig struct{}

// NewSTVRule creates an STVRule with the specified configuration.
// Returns an error if the name is empty.
func NewSTVRule(name string, config STVConfig) (*STVRule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	return &STVRule{name: name, config: config}, nil
}

// Name returns the unique identifier for this rule instance.
func (r *STVRule) Name() string { return r.name }

// Evaluate runs elimination rounds until at most one candidate remains.
// Fails with domain.ErrEmptyElection for a profile without candidates.
// A nil Winner with a nil error means every remaining candidate was
// eliminated in the final round.
func (r *STVRule) Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error) {
	remaining := newCandidateSet(p.Candidates())
	if remaining.Len() == 0 {
		return domain.Result{}, domain.NewRuleError(r.name, domain.ErrEmptyElection)
	}

	voters := p.Voters()
	rounds := 0

	for remaining.Len() > 1 {
		tally := domain.NewTally(remaining.Items())
		for _, v := range voters {
			for _, c := range remaining.Items() {
				if p.Rank(c, v) == 0 {
					tally.Add(c, 1)
				}
			}
		}

		min, _ := tally.Min()
		for _, c := range remaining.Items() {
			if tally.Score(c) == min {
				remaining.Remove(c)
			}
		}
		rounds++
	}

	res := domain.Result{
		ID:     fmt.Sprintf("%s_result", r.name),
		Rounds: rounds,
	}
	if remaining.Len() == 1 {
		winner := remaining.Items()[0]
		res.Winner = &winner
	}
	return res, nil
}

// Validate checks if the rule is properly configured and ready for
// evaluation.
func (r *STVRule) Validate() error { return nil }

// UnmarshalParameters deserializes YAML configuration parameters.
// STV accepts only an empty parameter mapping; anything else is a
// configuration typo.
func (r *STVRule) UnmarshalParameters(params yaml.Node) error {
	var config STVConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	r.config = config
	return nil
}

// NewSTVFromConfig creates an STVRule from a configuration map,
// following the RuleFactory pattern used by the rule registry.
func NewSTVFromConfig(id string, config map[string]any) (ports.Rule, error) {
	return NewSTVRule(id, STVConfig{})
}

// candidateSet is an ordered shrinking candidate set: iteration always
// follows the original enumeration order while membership checks and
// removals stay O(1). Set semantics alone would do for correctness, but
// deterministic iteration keeps elimination reproducible.
type candidateSet struct {
	order   []domain.Candidate
	present map[domain.Candidate]bool
}

func newCandidateSet(candidates []domain.Candidate) *candidateSet {
	s := &candidateSet{
		order:   append([]domain.Candidate(nil), candidates...),
		present: make(map[domain.Candidate]bool, len(candidates)),
	}
	for _, c := range candidates {
		s.present[c] = true
	}
	return s
}

// Len returns the number of candidates still in the set.
func (s *candidateSet) Len() int {
	n := 0
	for _, ok := range s.present {
		if ok {
			n++
		}
	}
	return n
}

// Items returns the remaining candidates in original enumeration order.
func (s *candidateSet) Items() []domain.Candidate {
	items := make([]domain.Candidate, 0, len(s.order))
	for _, c := range s.order {
		if s.present[c] {
			items = append(items, c)
		}
	}
	return items
}

// Remove eliminates a candidate from the set.
func (s *candidateSet) Remove(c domain.Candidate) { s.present[c] = false }
