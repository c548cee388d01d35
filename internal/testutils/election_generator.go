// Package testutils provides helpers for generating synthetic elections
// used by tests, benchmarks, and the dataset generator command.
package testutils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/application"
	"github.com/ahrav/go-ballot/internal/domain"
)

// GenerateBallots produces one uniformly random complete ranking per
// voter over the given candidates. The same seed always produces the
// same ballots, keeping generated fixtures reproducible.
func GenerateBallots(candidates []domain.Candidate, numVoters int, seed int64) []domain.Ballot {
	rng := rand.New(rand.NewSource(seed))

	ballots := make([]domain.Ballot, 0, numVoters)
	for v := 1; v <= numVoters; v++ {
		ranking := append([]domain.Candidate(nil), candidates...)
		rng.Shuffle(len(ranking), func(i, j int) {
			ranking[i], ranking[j] = ranking[j], ranking[i]
		})
		ballots = append(ballots, domain.Ballot{
			Voter:   domain.Voter(v),
			Ranking: ranking,
		})
	}
	return ballots
}

// GenerateProfile builds a random TableProfile with candidates 1..n and
// voters 1..v.
func GenerateProfile(numCandidates, numVoters int, seed int64) (*domain.TableProfile, error) {
	candidates := Candidates(numCandidates)
	return domain.NewTableProfile(candidates, GenerateBallots(candidates, numVoters, seed))
}

// Candidates returns the candidate universe 1..n.
func Candidates(n int) []domain.Candidate {
	out := make([]domain.Candidate, 0, n)
	for c := 1; c <= n; c++ {
		out = append(out, domain.Candidate(c))
	}
	return out
}

// GenerateElectionConfig builds a complete election configuration with
// random ballots and the full standard rule set: plurality, veto,
// borda, a Borda-equivalent scoring rule, dictatorship by voter 1, and
// STV.
func GenerateElectionConfig(name string, numCandidates, numVoters int, seed int64) (*application.ElectionConfig, error) {
	if numCandidates < 1 || numVoters < 1 {
		return nil, fmt.Errorf("election needs at least one candidate and one voter, got %d/%d",
			numCandidates, numVoters)
	}

	candidates := Candidates(numCandidates)

	// Borda-equivalent vector: n-1, n-2, ..., 0.
	vector := make([]int, numCandidates)
	for i := range vector {
		vector[i] = numCandidates - 1 - i
	}

	ruleConfigs := []struct {
		id     string
		typ    string
		params map[string]any
	}{
		{"plurality_main", "plurality", nil},
		{"veto_main", "veto", nil},
		{"borda_main", "borda", nil},
		{"scoring_borda", "scoring", map[string]any{"score_vector": vector, "tie_break_agent": 1}},
		{"dictatorship_v1", "dictatorship", map[string]any{"agent": 1}},
		{"stv_main", "stv", nil},
	}

	config := &application.ElectionConfig{
		Version: "1.0",
		Metadata: application.Metadata{
			Name:        name,
			Description: fmt.Sprintf("Synthetic election: %d candidates, %d voters, seed %d", numCandidates, numVoters, seed),
			Tags:        []string{"synthetic"},
		},
		Candidates: candidates,
		Ballots:    GenerateBallots(candidates, numVoters, seed),
	}

	for _, rc := range ruleConfigs {
		cfg := application.RuleConfig{ID: rc.id, Type: rc.typ}
		if rc.params != nil {
			if err := cfg.Parameters.Encode(rc.params); err != nil {
				return nil, fmt.Errorf("encode parameters for %s: %w", rc.id, err)
			}
		}
		config.Rules = append(config.Rules, cfg)
	}

	return config, nil
}

// SaveElectionConfig writes an election configuration as YAML, creating
// parent directories as needed.
func SaveElectionConfig(config *application.ElectionConfig, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal election config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write election config: %w", err)
	}
	return nil
}
