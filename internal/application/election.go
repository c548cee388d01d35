package application

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// Election binds a preference profile to the set of rules configured to
// evaluate it. The profile is read-only and the rules are stateless, so
// a single Election is safe for concurrent Run calls.
type Election struct {
	// name is the human-readable election name from configuration.
	name string
	// profile is the immutable preference profile under evaluation.
	profile domain.Profile
	// rules are the configured rule instances, in configuration order.
	rules []ports.Rule
}

// NewElection creates an Election after validating every rule.
func NewElection(name string, profile domain.Profile, rs []ports.Rule) (*Election, error) {
	if profile == nil {
		return nil, fmt.Errorf("election %q: profile is required", name)
	}
	if len(rs) == 0 {
		return nil, fmt.Errorf("election %q: at least one rule is required", name)
	}
	for _, r := range rs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("election %q: rule %s: %w", name, r.Name(), err)
		}
	}
	return &Election{
		name:    name,
		profile: profile,
		rules:   append([]ports.Rule(nil), rs...),
	}, nil
}

// Name returns the election's configured name.
func (e *Election) Name() string { return e.name }

// Profile returns the election's preference profile.
func (e *Election) Profile() domain.Profile { return e.profile }

// Rules returns the configured rules in configuration order.
// The returned slice is a copy and safe to modify.
func (e *Election) Rules() []ports.Rule {
	return append([]ports.Rule(nil), e.rules...)
}

// Run evaluates every configured rule against the profile concurrently
// and returns the results keyed by rule name. Rules are independent
// computations over a read-only profile, so they parallelize without
// coordination. The first rule error cancels the remaining evaluations
// and is returned.
func (e *Election) Run(ctx context.Context) (map[string]domain.Result, error) {
	results := make(map[string]domain.Result, len(e.rules))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range e.rules {
		g.Go(func() error {
			res, err := r.Evaluate(ctx, e.profile)
			if err != nil {
				return err
			}
			mu.Lock()
			results[r.Name()] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
