package application

import (
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
)

// ElectionConfig is the root schema for a declarative election file:
// the candidate universe, the cast ballots, and the rules to evaluate
// against them.
type ElectionConfig struct {
	// Version is the configuration schema version.
	Version string `yaml:"version" validate:"required"`

	// Metadata describes the election for humans and tooling.
	Metadata Metadata `yaml:"metadata" validate:"required"`

	// Candidates lists the full candidate universe. The listed order is
	// the natural candidate enumeration used for tie-breaking.
	Candidates []domain.Candidate `yaml:"candidates" validate:"required,min=1,unique"`

	// Ballots holds one complete ranking per voter.
	Ballots []domain.Ballot `yaml:"ballots" validate:"required,min=1,dive"`

	// Rules configures the voting rules to evaluate.
	Rules []RuleConfig `yaml:"rules" validate:"required,min=1,dive"`
}

// Metadata describes an election configuration.
type Metadata struct {
	// Name is a human-readable election name.
	Name string `yaml:"name" validate:"required,min=1,max=255"`

	// Description optionally explains the election's purpose.
	Description string `yaml:"description" validate:"max=1000"`

	// Tags optionally categorize the election for tooling.
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
}

// RuleConfig configures a single rule instance within an election.
type RuleConfig struct {
	// ID uniquely identifies this rule instance within the election.
	ID string `yaml:"id" validate:"required,identifier,max=100"`

	// Type selects the rule implementation.
	Type string `yaml:"type" validate:"required,oneof=plurality veto borda scoring dictatorship stv custom"`

	// Parameters carries rule-specific configuration, validated by the
	// rule itself during construction.
	Parameters yaml.Node `yaml:"parameters"`
}
