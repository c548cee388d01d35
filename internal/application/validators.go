package application

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// identifierPattern matches rule identifiers: letters, digits, and
// underscores, starting with a letter.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// registerCustomValidators installs semantic validators that cannot be
// expressed through built-in struct tags.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register identifier validator: %w", err)
	}
	return nil
}

// ValidateRuleParameters validates the parameters for a specific rule
// type before construction, catching the most common configuration
// mistakes early with a clearer message than the rule's own validation
// would produce. It returns an error if parameter decoding fails or a
// required field is missing.
func ValidateRuleParameters(ruleType string, params yaml.Node) error {
	var paramMap map[string]any
	if !params.IsZero() {
		if err := params.Decode(&paramMap); err != nil {
			return fmt.Errorf("failed to decode parameters: %w", err)
		}
	}

	switch ruleType {
	case "plurality", "veto", "borda":
		return validateTieBreakParams(paramMap)
	case "scoring":
		return validateScoringParams(paramMap)
	case "dictatorship":
		return validateDictatorshipParams(paramMap)
	case "stv":
		if len(paramMap) > 0 {
			return fmt.Errorf("stv takes no parameters")
		}
		return nil
	case "custom":
		// Custom rules validate their own parameters.
		return nil
	default:
		return fmt.Errorf("unknown rule type: %s", ruleType)
	}
}

// validateTieBreakParams checks the optional tie-break configuration
// shared by the plurality, veto, and borda rules.
func validateTieBreakParams(params map[string]any) error {
	tb, ok := params["tie_break"]
	if !ok {
		return nil
	}

	switch tb {
	case "candidate_order":
		return nil
	case "agent":
		if _, ok := params["tie_break_agent"]; !ok {
			return fmt.Errorf("tie_break %q requires 'tie_break_agent' parameter", tb)
		}
		return nil
	default:
		return fmt.Errorf("invalid tie_break %q: want 'candidate_order' or 'agent'", tb)
	}
}

// validateScoringParams checks the generalized scoring rule's required
// parameters.
func validateScoringParams(params map[string]any) error {
	if _, ok := params["score_vector"]; !ok {
		return fmt.Errorf("scoring requires 'score_vector' parameter")
	}
	if _, ok := params["tie_break_agent"]; !ok {
		return fmt.Errorf("scoring requires 'tie_break_agent' parameter")
	}
	return nil
}

// validateDictatorshipParams checks the dictatorship rule's required
// parameters.
func validateDictatorshipParams(params map[string]any) error {
	if _, ok := params["agent"]; !ok {
		return fmt.Errorf("dictatorship requires 'agent' parameter")
	}
	return nil
}
