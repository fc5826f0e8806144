package ai

import (
	"context"
	"fmt"
	"strings"

	"vouch/internal/model"
)

// positiveMarkers and negativeMarkers drive the keyword scan over search
// snippets. The lists are short on purpose: the heuristic is a fallback,
// not a sentiment model.
var positiveMarkers = []string{
	"verified", "excellent", "trusted", "recommended", "professional",
	"established", "award", "accredited",
}

var negativeMarkers = []string{
	"complaint", "scam", "warning", "avoid", "fraud", "unresolved",
	"dispute", "closed down",
}

// trustedListingMarkers recognize hits on vetted review platforms.
var trustedListingMarkers = []string{
	"trustpilot", "checkatrade", "which? trusted", "trustatrader", "feefo",
}

// Heuristic is a deterministic analyzer: identical input always yields
// an identical analysis.
type Heuristic struct{}

// NewHeuristic creates the fallback analyzer.
func NewHeuristic() *Heuristic { return &Heuristic{} }

func (h *Heuristic) Name() string { return "heuristic" }

// Analyze scores credibility from marker counts across the result set.
func (h *Heuristic) Analyze(ctx context.Context, businessName string, results []model.SearchResult) (*model.CredibilityAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	positives, negatives, trusted := 0, 0, 0
	for _, r := range results {
		text := strings.ToLower(r.Title + " " + r.Snippet + " " + r.Source)
		for _, marker := range positiveMarkers {
			if strings.Contains(text, marker) {
				positives++
			}
		}
		for _, marker := range negativeMarkers {
			if strings.Contains(text, marker) {
				negatives++
			}
		}
		for _, marker := range trustedListingMarkers {
			if strings.Contains(text, marker) {
				trusted++
			}
		}
	}

	score := 50 + positives*6 + trusted*8 - negatives*12
	if len(results) == 0 {
		score = 40
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	sentiment := model.SentimentNeutral
	switch {
	case score >= 70:
		sentiment = model.SentimentPositive
	case score < 45:
		sentiment = model.SentimentNegative
	}

	analysis := &model.CredibilityAnalysis{
		Score:     score,
		Sentiment: sentiment,
		Insights: []string{
			fmt.Sprintf("Analyzed %d search results for %s", len(results), businessName),
		},
	}
	if trusted > 0 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("Listed on %d trusted review platform(s)", trusted))
	}
	if positives > 0 {
		analysis.Strengths = append(analysis.Strengths, "Positive language across public listings")
	}
	if negatives > 0 {
		analysis.RedFlags = append(analysis.RedFlags,
			fmt.Sprintf("%d negative marker(s) found in search results", negatives))
		analysis.Concerns = append(analysis.Concerns, "Negative mentions warrant manual review")
	}
	if len(results) == 0 {
		analysis.RedFlags = append(analysis.RedFlags, "No search presence found")
	}
	return analysis, nil
}
