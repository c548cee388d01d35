// Package rules provides the voting rules that implement the ports.Rule
// interface for the go-ballot election engine.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-ballot/internal/domain"
)

// TieBreakOrder selects the candidate ordering handed to the tie-break
// primitive when multiple candidates share the winning score.
type TieBreakOrder string

// Supported tie-break orderings for scoring rules.
const (
	// OrderCandidates breaks ties by the profile's natural candidate
	// enumeration. This is the deterministic default.
	OrderCandidates TieBreakOrder = "candidate_order"

	// OrderAgent breaks ties by a designated voter's ranking: tied
	// candidates that the agent prefers win. Requires a tie-break agent.
	OrderAgent TieBreakOrder = "agent"
)

// Common errors returned by rule constructors.
var (
	// ErrEmptyRuleName is returned when attempting to create a rule with an empty name.
	ErrEmptyRuleName = errors.New("rule name cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// ScoringStep mutates the score table for a single voter. It is the only
// extension point of the shared aggregator: each positional rule supplies
// its own step and nothing else.
type ScoringStep func(p domain.Profile, v domain.Voter, t *domain.Tally)

// calculatePoints is the shared winner-selection skeleton. It zero-fills
// a score table in candidate enumeration order, applies the scoring step
// once per voter, and elects the candidate with the maximum score,
// breaking ties with the first candidate of order that is among the
// tied winners.
//
// It fails with domain.ErrEmptyElection when the profile has no
// candidates, since the maximum over an empty table is undefined.
func calculatePoints(
	p domain.Profile,
	order []domain.Candidate,
	step ScoringStep,
) (domain.Candidate, *domain.Tally, []domain.Candidate, error) {
	tally := domain.NewTally(p.Candidates())
	if tally.Len() == 0 {
		return 0, nil, nil, domain.ErrEmptyElection
	}

	for _, v := range p.Voters() {
		step(p, v, tally)
	}

	winners := tally.Winners()
	if len(winners) == 1 {
		return winners[0], tally, winners, nil
	}

	winner, err := domain.TieBreak(order, winners)
	if err != nil {
		return 0, nil, nil, err
	}
	return winner, tally, winners, nil
}

// tieBreakOrder resolves the configured ordering against a profile.
// OrderAgent validates the agent against the profile's voters and sorts
// candidates by the agent's ranking, most-preferred first.
func tieBreakOrder(
	p domain.Profile,
	order TieBreakOrder,
	agent domain.Voter,
) ([]domain.Candidate, error) {
	switch order {
	case OrderCandidates, "":
		return p.Candidates(), nil
	case OrderAgent:
		if !isVoter(p, agent) {
			return nil, fmt.Errorf("%w: tie-break agent %d", domain.ErrInvalidAgent, agent)
		}
		// Copy before sorting: the contract does not promise Candidates
		// returns a fresh slice.
		candidates := append([]domain.Candidate(nil), p.Candidates()...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return p.Rank(candidates[i], agent) < p.Rank(candidates[j], agent)
		})
		return candidates, nil
	default:
		return nil, fmt.Errorf("unknown tie-break order: %s", order)
	}
}

// isVoter reports whether agent appears in the profile's voter set.
func isVoter(p domain.Profile, agent domain.Voter) bool {
	for _, v := range p.Voters() {
		if v == agent {
			return true
		}
	}
	return false
}

// scoreResult assembles the standard result for a scoring rule.
func scoreResult(
	ruleName string,
	winner domain.Candidate,
	tally *domain.Tally,
	winners []domain.Candidate,
) domain.Result {
	res := domain.Result{
		ID:           fmt.Sprintf("%s_result", ruleName),
		Winner:       &winner,
		WinningScore: tally.Score(winner),
		Scores:       tally.Snapshot(),
	}
	if len(winners) > 1 {
		res.TiedWith = winners
	}
	return res
}
