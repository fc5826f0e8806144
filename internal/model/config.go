package model

import (
	"errors"
	"time"
)

// ErrNegativeWeight indicates a trust-factor weight below zero.
var ErrNegativeWeight = errors.New("trust factor weights must be non-negative")

// Config is the full engine configuration. Everything here is data, not
// logic: scoring weights, rule tables and compliance templates can be
// replaced per jurisdiction without code changes.
type Config struct {
	Sources SourceConfig  `yaml:"sources" mapstructure:"sources"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	AI      AIConfig      `yaml:"ai" mapstructure:"ai"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`

	// RulesPath optionally points at a YAML file overriding the built-in
	// industry keyword rules (localization to non-UK regimes).
	RulesPath string `yaml:"rules_path,omitempty" mapstructure:"rules_path"`
	// TemplatesPath optionally overrides the built-in compliance
	// requirement templates.
	TemplatesPath string `yaml:"templates_path,omitempty" mapstructure:"templates_path"`
}

// SourceConfig controls evidence-source calls.
type SourceConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RetryBackoff      time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ScoringConfig carries the trust-factor weights. Weights are validated
// to be non-negative but their sum is intentionally not forced to 100;
// the overall-score clamp handles over-weighted configurations.
type ScoringConfig struct {
	Weights TrustWeights `yaml:"weights" mapstructure:"weights"`
}

// TrustWeights is the per-factor weight table.
type TrustWeights struct {
	Registration int `yaml:"registration" mapstructure:"registration"`
	Alignment    int `yaml:"alignment" mapstructure:"alignment"`
	Reputation   int `yaml:"reputation" mapstructure:"reputation"`
	Compliance   int `yaml:"compliance" mapstructure:"compliance"`
	Longevity    int `yaml:"longevity" mapstructure:"longevity"`
}

// AIConfig configures the credibility analyzer.
type AIConfig struct {
	Provider  string        `yaml:"provider,omitempty" mapstructure:"provider"` // "openai" or "" for the heuristic analyzer
	Model     string        `yaml:"model,omitempty" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"api_key"` // env only, never written to disk
	BaseURL   string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourceConfig{
			Timeout:           10 * time.Second,
			RetryBackoff:      time.Second,
			RequestsPerSecond: 2,
			Burst:             5,
			CacheTTL:          15 * time.Minute,
			UserAgent:         "Vouch/0.1 (business verification)",
			MaxBodyBytes:      2_000_000,
		},
		Scoring: ScoringConfig{
			Weights: TrustWeights{
				Registration: 25,
				Alignment:    20,
				Reputation:   20,
				Compliance:   20,
				Longevity:    15,
			},
		},
		AI: AIConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30 * time.Second,
			MaxTokens: 1000,
		},
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	w := c.Scoring.Weights
	for _, v := range []int{w.Registration, w.Alignment, w.Reputation, w.Compliance, w.Longevity} {
		if v < 0 {
			return ErrNegativeWeight
		}
	}
	return nil
}
