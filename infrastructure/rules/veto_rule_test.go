package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
)

// TestVetoRule_Evaluate verifies that only bottom-ranked candidates miss
// a voter's point.
func TestVetoRule_Evaluate(t *testing.T) {
	t.Run("candidate never ranked last scores the voter count", func(t *testing.T) {
		// Candidate 1 is nobody's last choice; 2 and 3 are each vetoed once.
		p := mustProfile(t, []domain.Candidate{1, 2, 3},
			[]domain.Candidate{2, 1, 3},
			[]domain.Candidate{3, 1, 2},
		)

		rule, err := NewVetoRule("veto_test", DefaultVetoConfig())
		require.NoError(t, err)

		result, err := rule.Evaluate(context.Background(), p)
		require.NoError(t, err)

		require.NotNil(t, result.Winner)
		assert.Equal(t, domain.Candidate(1), *result.Winner)
		assert.Equal(t, p.NumVoters(), result.WinningScore)
	})

	t.Run("tie resolved by candidate order", func(t *testing.T) {
		// Everyone vetoes candidate 3, so 1 and 2 tie at two points.
		p := mustProfile(t, []domain.Candidate{1, 2, 3},
			[]domain.Candidate{1, 2, 3},
			[]domain.Candidate{2, 1, 3},
		)

		rule, err := NewVetoRule("veto_test", DefaultVetoConfig())
		require.NoError(t, err)

		result, err := rule.Evaluate(context.Background(), p)
		require.NoError(t, err)

		require.NotNil(t, result.Winner)
		assert.Equal(t, domain.Candidate(1), *result.Winner)
		assert.Equal(t, []domain.Candidate{1, 2}, result.TiedWith)
	})
}

// TestNewVetoRule verifies construction-time validation.
func TestNewVetoRule(t *testing.T) {
	_, err := NewVetoRule("", DefaultVetoConfig())
	assert.ErrorIs(t, err, ErrEmptyRuleName)

	_, err = NewVetoRule("v", VetoConfig{TieBreak: "bogus"})
	assert.Error(t, err)
}

// TestNewVetoFromConfig verifies the registry factory path.
func TestNewVetoFromConfig(t *testing.T) {
	rule, err := NewVetoFromConfig("veto_main", nil)
	require.NoError(t, err)
	assert.Equal(t, "veto_main", rule.Name())
	assert.NoError(t, rule.Validate())
}
