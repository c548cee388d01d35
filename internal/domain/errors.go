package domain

import (
	"errors"
	"fmt"
)

// Common domain errors surfaced by rule evaluation. All are local
// precondition violations reported immediately to the caller; nothing in
// this domain retries or recovers internally.
var (
	// ErrInvalidAgent indicates that a designated agent (dictator or
	// tie-break authority) is not one of the profile's voters.
	ErrInvalidAgent = errors.New("agent is not a voter in this profile")

	// ErrInvalidScoreVector indicates that a score vector's length does
	// not match the candidate count.
	ErrInvalidScoreVector = errors.New("score vector length does not match candidate count")

	// ErrEmptyElection indicates that a rule was evaluated against a
	// profile with no candidates, leaving the maximum score undefined.
	ErrEmptyElection = errors.New("election has no candidates")

	// ErrNoWinner indicates that tie-breaking was asked to choose from an
	// empty or unrecognized winner set. It marks a contract violation by
	// the caller, not a legitimate tied outcome; rules whose semantics
	// allow a winnerless result return a nil Winner instead.
	ErrNoWinner = errors.New("no winner")

	// ErrNoTopChoice indicates that no candidate holds rank 0 for a
	// voter. Under a valid profile this cannot happen; it surfaces only
	// when the ranking invariant is broken.
	ErrNoTopChoice = errors.New("no candidate ranked first by agent")
)

// RuleError carries context about which rule failed and why.
// It wraps the underlying cause for errors.Is / errors.As inspection.
type RuleError struct {
	// Rule is the name of the rule instance that failed.
	Rule string

	// Err is the underlying error that caused evaluation to fail.
	Err error
}

// Error implements the error interface for RuleError.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.Rule, e.Err)
}

// Unwrap returns the underlying error, supporting error unwrapping.
func (e *RuleError) Unwrap() error { return e.Err }

// NewRuleError wraps err with the failing rule's name.
func NewRuleError(rule string, err error) *RuleError {
	return &RuleError{Rule: rule, Err: err}
}
