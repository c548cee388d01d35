// Package application orchestrates election construction and evaluation:
// it wires rule factories, loads election configurations, and runs the
// configured rules against a profile.
package application

import (
	"fmt"
	"sync"

	"github.com/ahrav/go-ballot/infrastructure/rules"
	"github.com/ahrav/go-ballot/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.RuleRegistry = (*DefaultRuleRegistry)(nil)

// DefaultRuleRegistry implements the RuleRegistry interface providing
// a factory for creating voting rules based on type and configuration.
// It supports dynamic registration of rule factories beyond the
// built-in rule set.
type DefaultRuleRegistry struct {
	// factories maps rule type strings to their factory functions.
	factories map[string]ports.RuleFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultRuleRegistry creates a new rule registry with the six
// standard voting rules pre-registered: plurality, veto, borda,
// scoring, dictatorship, and stv.
func NewDefaultRuleRegistry() *DefaultRuleRegistry {
	registry := &DefaultRuleRegistry{
		factories: make(map[string]ports.RuleFactory),
	}
	registry.registerBuiltinFactories()
	return registry
}

// registerBuiltinFactories registers the standard voting rules provided
// by the election engine.
func (r *DefaultRuleRegistry) registerBuiltinFactories() {
	r.factories["plurality"] = rules.NewPluralityFromConfig
	r.factories["veto"] = rules.NewVetoFromConfig
	r.factories["borda"] = rules.NewBordaFromConfig
	r.factories["scoring"] = rules.NewScoringFromConfig
	r.factories["dictatorship"] = rules.NewDictatorshipFromConfig
	r.factories["stv"] = rules.NewSTVFromConfig
}

// CreateRule creates a new rule instance based on the provided type,
// identifier, and configuration. It looks up the appropriate factory
// function and delegates rule creation.
func (r *DefaultRuleRegistry) CreateRule(
	ruleType string,
	id string,
	config map[string]any,
) (ports.Rule, error) {
	r.mu.RLock()
	factory, exists := r.factories[ruleType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported rule type: %s", ruleType)
	}

	if id == "" {
		return nil, fmt.Errorf("rule ID cannot be empty")
	}

	if config == nil {
		config = make(map[string]any)
	}

	rule, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s rule %q: %w", ruleType, id, err)
	}
	return rule, nil
}

// RegisterRuleFactory adds or replaces a factory for a rule type,
// allowing callers to plug in custom rules beyond the built-ins.
func (r *DefaultRuleRegistry) RegisterRuleFactory(ruleType string, factory ports.RuleFactory) error {
	if ruleType == "" {
		return fmt.Errorf("rule type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[ruleType] = factory
	return nil
}

// ListRuleTypes returns the registered rule type names.
// The order is unspecified.
func (r *DefaultRuleRegistry) ListRuleTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}
