package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
)

// TestScoringRule_ReproducesPlurality verifies that the vector
// [1,0,...,0] elects plurality's winner.
func TestScoringRule_ReproducesPlurality(t *testing.T) {
	p := mustProfile(t, []domain.Candidate{1, 2, 3},
		[]domain.Candidate{2, 1, 3},
		[]domain.Candidate{2, 3, 1},
		[]domain.Candidate{1, 2, 3},
	)

	scoring, err := NewScoringRule("scoring_test", ScoringConfig{
		ScoreVector:   []int{1, 0, 0},
		TieBreakAgent: 1,
	})
	require.NoError(t, err)

	plurality, err := NewPluralityRule("plurality_ref", DefaultPluralityConfig())
	require.NoError(t, err)

	scoringResult, err := scoring.Evaluate(context.Background(), p)
	require.NoError(t, err)
	pluralityResult, err := plurality.Evaluate(context.Background(), p)
	require.NoError(t, err)

	require.NotNil(t, scoringResult.Winner)
	require.NotNil(t, pluralityResult.Winner)
	assert.Equal(t, *pluralityResult.Winner, *scoringResult.Winner)
	assert.Equal(t, pluralityResult.WinningScore, scoringResult.WinningScore)
}

// TestScoringRule_ReproducesBorda verifies that the vector
// [n-1, n-2, ..., 0] elects Borda's winner with identical scores.
func TestScoringRule_ReproducesBorda(t *testing.T) {
	p := condorcetCycleProfile(t)

	scoring, err := NewScoringRule("scoring_test", ScoringConfig{
		ScoreVector:   []int{2, 1, 0},
		TieBreakAgent: 1,
	})
	require.NoError(t, err)

	borda, err := NewBordaRule("borda_ref", DefaultBordaConfig())
	require.NoError(t, err)

	scoringResult, err := scoring.Evaluate(context.Background(), p)
	require.NoError(t, err)
	bordaResult, err := borda.Evaluate(context.Background(), p)
	require.NoError(t, err)

	require.NotNil(t, scoringResult.Winner)
	require.NotNil(t, bordaResult.Winner)
	assert.Equal(t, *bordaResult.Winner, *scoringResult.Winner)
	assert.Equal(t, bordaResult.Scores, scoringResult.Scores)
}

// TestScoringRule_AgentTieBreak verifies that ties go to the candidate
// preferred by the designated agent.
func TestScoringRule_AgentTieBreak(t *testing.T) {
	p := condorcetCycleProfile(t)

	// Constant vector: every candidate scores the same, full tie.
	// Voter 3 ranks 3 > 1 > 2, so candidate 3 takes the tie.
	rule, err := NewScoringRule("scoring_test", ScoringConfig{
		ScoreVector:   []int{1, 1, 1},
		TieBreakAgent: 3,
	})
	require.NoError(t, err)

	result, err := rule.Evaluate(context.Background(), p)
	require.NoError(t, err)

	require.NotNil(t, result.Winner)
	assert.Equal(t, domain.Candidate(3), *result.Winner)
	assert.Len(t, result.TiedWith, 3)
}

// TestScoringRule_Preconditions verifies the rule's two failure modes.
func TestScoringRule_Preconditions(t *testing.T) {
	p := condorcetCycleProfile(t)

	t.Run("vector length mismatch", func(t *testing.T) {
		rule, err := NewScoringRule("scoring_test", ScoringConfig{
			ScoreVector:   []int{1, 0},
			TieBreakAgent: 1,
		})
		require.NoError(t, err)

		_, err = rule.Evaluate(context.Background(), p)
		assert.ErrorIs(t, err, domain.ErrInvalidScoreVector)
	})

	t.Run("tie-break agent not a voter", func(t *testing.T) {
		rule, err := NewScoringRule("scoring_test", ScoringConfig{
			ScoreVector:   []int{1, 0, 0},
			TieBreakAgent: 42,
		})
		require.NoError(t, err)

		_, err = rule.Evaluate(context.Background(), p)
		assert.ErrorIs(t, err, domain.ErrInvalidAgent)
	})
}

// TestNewScoringRule verifies construction-time validation.
func TestNewScoringRule(t *testing.T) {
	_, err := NewScoringRule("", ScoringConfig{ScoreVector: []int{1}, TieBreakAgent: 1})
	assert.ErrorIs(t, err, ErrEmptyRuleName)

	_, err = NewScoringRule("s", ScoringConfig{TieBreakAgent: 1})
	assert.Error(t, err, "score vector is required")

	_, err = NewScoringRule("s", ScoringConfig{ScoreVector: []int{1, 0}})
	assert.Error(t, err, "tie-break agent is required")
}

// TestNewScoringFromConfig verifies the registry factory path.
func TestNewScoringFromConfig(t *testing.T) {
	rule, err := NewScoringFromConfig("scoring_main", map[string]any{
		"score_vector":    []int{3, 2, 1, 0},
		"tie_break_agent": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "scoring_main", rule.Name())
	assert.NoError(t, rule.Validate())

	_, err = NewScoringFromConfig("scoring_main", map[string]any{
		"tie_break_agent": 1,
	})
	assert.Error(t, err)
}
