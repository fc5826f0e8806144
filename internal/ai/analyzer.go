// Package ai analyzes gathered search evidence for business credibility.
// Two implementations exist: an OpenAI-backed analyzer for live runs and
// a deterministic heuristic analyzer used when no provider is configured
// and in every test.
package ai

import (
	"context"
	"fmt"

	"vouch/internal/model"
)

// Analyzer produces a credibility analysis from search evidence.
type Analyzer interface {
	// Name returns the analyzer name for report attribution.
	Name() string

	// Analyze examines the search results for a business and returns a
	// structured credibility assessment.
	Analyze(ctx context.Context, businessName string, results []model.SearchResult) (*model.CredibilityAnalysis, error)
}

// NewAnalyzer builds an analyzer from configuration. An empty provider
// selects the heuristic analyzer; "openai" requires an API key.
func NewAnalyzer(cfg model.AIConfig) (Analyzer, error) {
	switch cfg.Provider {
	case "":
		return NewHeuristic(), nil
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}
