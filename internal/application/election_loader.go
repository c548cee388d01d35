package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// ElectionLoader provides YAML configuration parsing, validation, and
// caching for elections, transforming declarative election files into
// runnable Election values.
// Use ElectionLoader to load elections from files or readers while
// benefiting from SHA256-based caching and comprehensive validation.
type ElectionLoader struct {
	// validator performs struct field validation and custom validation
	// rules for election configurations.
	validator *validator.Validate
	// ruleRegistry provides factory methods for creating rules based on
	// their type and configuration parameters.
	ruleRegistry ports.RuleRegistry
	// cache stores compiled elections indexed by SHA256 hash of the
	// normalized configuration to avoid recompiling identical files.
	cache map[string]*Election
	// cacheMu provides thread-safe access to the cache map.
	cacheMu sync.RWMutex
	// sf prevents duplicate compilation when multiple goroutines request
	// the same election simultaneously.
	sf singleflight.Group
}

// NewElectionLoader creates a new election loader with validation
// capabilities and an empty cache. It registers custom validators for
// semantic validation beyond basic struct field validation and returns
// an error if validator registration fails.
func NewElectionLoader(ruleRegistry ports.RuleRegistry) (*ElectionLoader, error) {
	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return &ElectionLoader{
		validator:    v,
		ruleRegistry: ruleRegistry,
		cache:        make(map[string]*Election),
	}, nil
}

// LoadFromFile loads and compiles an election from a YAML file,
// utilizing SHA256-based caching to avoid recompilation of identical
// files. It returns an error if file reading, parsing, validation, or
// compilation fails.
func (el *ElectionLoader) LoadFromFile(ctx context.Context, path string) (*Election, error) {
	// Clean the path to prevent directory traversal attacks.
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return el.load(ctx, data)
}

// LoadFromReader loads and compiles an election from an io.Reader,
// supporting any source that implements the Reader interface. It applies
// the same caching and validation as LoadFromFile.
func (el *ElectionLoader) LoadFromReader(ctx context.Context, r io.Reader) (*Election, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return el.load(ctx, data)
}

// load is the common implementation for loading elections from byte
// data, utilizing singleflight to prevent duplicate compilation and
// SHA256-based caching for efficiency.
func (el *ElectionLoader) load(ctx context.Context, data []byte) (*Election, error) {
	config, err := el.parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Hash the normalized config, not the raw bytes, so formatting-only
	// differences still hit the cache.
	hash, err := el.calculateConfigHash(config)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate hash: %w", err)
	}

	v, err, _ := el.sf.Do(hash, func() (any, error) {
		if election, ok := el.getCachedElection(hash); ok {
			return election, nil
		}

		if err := el.validateConfig(config); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		election, err := el.buildElection(config)
		if err != nil {
			return nil, fmt.Errorf("failed to build election: %w", err)
		}

		el.cacheElection(hash, election)
		return election, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Election), nil
}

// parseYAML unmarshals YAML byte data into a structured ElectionConfig.
// It uses strict decoding to detect unknown fields, preventing
// configuration typos from being silently ignored.
func (el *ElectionLoader) parseYAML(data []byte) (*ElectionConfig, error) {
	var config ElectionConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &config, nil
}

// validateConfig performs struct field validation and semantic
// validation of relationships between configuration elements.
func (el *ElectionLoader) validateConfig(config *ElectionConfig) error {
	if err := el.validator.Struct(config); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}
	if err := el.validateSemantics(config); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}
	return nil
}

// validateSemantics performs domain-specific validation rules that
// cannot be expressed through struct tags: rule ID uniqueness, voter
// uniqueness, and rule parameter validation.
func (el *ElectionLoader) validateSemantics(config *ElectionConfig) error {
	ruleIDs := make(map[string]struct{}, len(config.Rules))
	for _, rule := range config.Rules {
		if _, exists := ruleIDs[rule.ID]; exists {
			return fmt.Errorf("duplicate rule ID %q", rule.ID)
		}
		ruleIDs[rule.ID] = struct{}{}

		if err := ValidateRuleParameters(rule.Type, rule.Parameters); err != nil {
			return fmt.Errorf("rule %s parameter validation failed: %w", rule.ID, err)
		}
	}

	voters := make(map[domain.Voter]struct{}, len(config.Ballots))
	for _, b := range config.Ballots {
		if _, exists := voters[b.Voter]; exists {
			return fmt.Errorf("duplicate ballot for voter %d", b.Voter)
		}
		voters[b.Voter] = struct{}{}
	}

	return nil
}

// buildElection constructs the profile and rule instances from a
// validated configuration.
func (el *ElectionLoader) buildElection(config *ElectionConfig) (*Election, error) {
	profile, err := domain.NewTableProfile(config.Candidates, config.Ballots)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile: %w", err)
	}

	ruleSet := make([]ports.Rule, 0, len(config.Rules))
	for _, rc := range config.Rules {
		var params map[string]any
		if !rc.Parameters.IsZero() {
			if err := rc.Parameters.Decode(&params); err != nil {
				return nil, fmt.Errorf("rule %s: failed to decode parameters: %w", rc.ID, err)
			}
		}

		rule, err := el.ruleRegistry.CreateRule(rc.Type, rc.ID, params)
		if err != nil {
			return nil, err
		}
		ruleSet = append(ruleSet, rule)
	}

	return NewElection(config.Metadata.Name, profile, ruleSet)
}

// calculateConfigHash produces a stable SHA256 hash of the normalized
// configuration for cache indexing.
func (el *ElectionLoader) calculateConfigHash(config *ElectionConfig) (string, error) {
	normalized, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to normalize config: %w", err)
	}
	sum := sha256.Sum256(normalized)
	return hex.EncodeToString(sum[:]), nil
}

// getCachedElection retrieves a compiled election from the cache.
func (el *ElectionLoader) getCachedElection(hash string) (*Election, bool) {
	el.cacheMu.RLock()
	defer el.cacheMu.RUnlock()
	election, ok := el.cache[hash]
	return election, ok
}

// cacheElection stores a compiled election in the cache.
func (el *ElectionLoader) cacheElection(hash string, election *Election) {
	el.cacheMu.Lock()
	defer el.cacheMu.Unlock()
	el.cache[hash] = election
}
