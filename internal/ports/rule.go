// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/ahrav/go-ballot/internal/domain"
)

// Rule is a single winner-determination procedure over a preference
// profile. Implementations should be stateless after construction and
// thread-safe for concurrent evaluation; all working storage (score
// tables, elimination sets) is local to one Evaluate call.
type Rule interface {
	// Name returns a unique identifier for this rule instance.
	// The name is used for logging, result IDs, and configuration.
	Name() string

	// Evaluate computes the election outcome for the given profile.
	// The profile is read-only from the rule's perspective and is never
	// mutated. Errors are immediate precondition violations
	// (domain.ErrInvalidAgent, domain.ErrEmptyElection, ...) surfaced to
	// the caller; rules never retry.
	//
	// The context parameter allows cancellation to propagate through
	// middleware; the core algorithms themselves are bounded, finite
	// computations.
	Evaluate(ctx context.Context, p domain.Profile) (domain.Result, error)

	// Validate checks if the rule is properly configured and ready for
	// evaluation. It is typically called during election construction.
	// Return nil if validation passes, or an error describing what is
	// invalid.
	Validate() error
}

// RuleFactory creates a Rule from an identifier and a raw configuration
// map, typically decoded from an election YAML file.
type RuleFactory func(id string, config map[string]any) (Rule, error)

// RuleRegistry provides dynamic rule creation by type name.
// It decouples the election loader from concrete rule implementations.
type RuleRegistry interface {
	// CreateRule instantiates a rule of the given type with the provided
	// identifier and configuration.
	CreateRule(ruleType, id string, config map[string]any) (Rule, error)

	// RegisterRuleFactory adds or replaces a factory for a rule type,
	// allowing callers to plug in custom rules beyond the built-ins.
	RegisterRuleFactory(ruleType string, factory RuleFactory) error

	// ListRuleTypes returns the registered rule type names.
	ListRuleTypes() []string
}
