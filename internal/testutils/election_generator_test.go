package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/application"
	"github.com/ahrav/go-ballot/internal/domain"
)

func TestGenerateBallots(t *testing.T) {
	candidates := Candidates(4)

	t.Run("produces complete rankings", func(t *testing.T) {
		ballots := GenerateBallots(candidates, 10, 42)
		require.Len(t, ballots, 10)

		for _, b := range ballots {
			assert.Len(t, b.Ranking, len(candidates))
			assert.ElementsMatch(t, candidates, b.Ranking,
				"voter %d ranking should be a permutation of the candidates", b.Voter)
		}
	})

	t.Run("same seed is deterministic", func(t *testing.T) {
		first := GenerateBallots(candidates, 20, 7)
		second := GenerateBallots(candidates, 20, 7)
		assert.Equal(t, first, second)
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		first := GenerateBallots(candidates, 20, 7)
		second := GenerateBallots(candidates, 20, 8)
		assert.NotEqual(t, first, second)
	})
}

func TestGenerateProfile(t *testing.T) {
	profile, err := GenerateProfile(5, 30, 42)
	require.NoError(t, err)

	assert.Equal(t, 5, profile.NumCandidates())
	assert.Equal(t, 30, profile.NumVoters())
	assert.Equal(t, Candidates(5), profile.Candidates())
}

func TestGenerateElectionConfig(t *testing.T) {
	t.Run("rejects empty dimensions", func(t *testing.T) {
		_, err := GenerateElectionConfig("bad", 0, 10, 1)
		require.Error(t, err)

		_, err = GenerateElectionConfig("bad", 3, 0, 1)
		require.Error(t, err)
	})

	t.Run("round-trips through the loader", func(t *testing.T) {
		config, err := GenerateElectionConfig("synthetic", 4, 25, 42)
		require.NoError(t, err)
		require.Len(t, config.Rules, 6)

		path := filepath.Join(t.TempDir(), "synthetic", "election.yaml")
		require.NoError(t, SaveElectionConfig(config, path))

		loader, err := application.NewElectionLoader(application.NewDefaultRuleRegistry())
		require.NoError(t, err)

		election, err := loader.LoadFromFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "synthetic", election.Name())
		assert.Len(t, election.Rules(), 6)

		results, err := election.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 6)

		// The dictatorship winner is voter 1's top choice by
		// construction.
		ballots := GenerateBallots(Candidates(4), 25, 42)
		dictator := results["dictatorship_v1"]
		require.NotNil(t, dictator.Winner)
		assert.Equal(t, ballots[0].Ranking[0], *dictator.Winner)

		// A Borda-equivalent score vector must agree with the Borda
		// rule on the winning score. The winners themselves may differ
		// only when tied, since the two rules break ties differently.
		borda := results["borda_main"]
		scoring := results["scoring_borda"]
		assert.Equal(t, borda.WinningScore, scoring.WinningScore)
		assert.ElementsMatch(t, borda.Scores, scoring.Scores)
	})
}

func TestGenerateBallots_DistinctVoters(t *testing.T) {
	ballots := GenerateBallots(Candidates(3), 50, 1)

	seen := make(map[domain.Voter]struct{}, len(ballots))
	for _, b := range ballots {
		_, dup := seen[b.Voter]
		require.False(t, dup, "voter %d appears twice", b.Voter)
		seen[b.Voter] = struct{}{}
	}
}
