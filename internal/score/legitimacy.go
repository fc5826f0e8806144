package score

import (
	"math"

	"vouch/internal/model"
)

// LegitimacyFunc bridges an evidence set to a 0..100 legitimacy score.
// The orchestrator picks one per legal-form branch; both built-ins below
// are deterministic for a fixed evidence set.
type LegitimacyFunc func(ev *model.EvidenceSet) int

// SoleTraderLegitimacy combines the four weighted sole-trader components:
//
//	credibility score            x 0.30
//	scam risk level mapped       x 0.25  (low 95, medium 75, high 50)
//	review rating normalized     x 0.25
//	trusted-platform presence    x 0.20  (more than two sites 90, else 70)
func SoleTraderLegitimacy(ev *model.EvidenceSet) int {
	credibility := 50.0
	if ev.Credibility != nil {
		credibility = float64(ev.Credibility.Score)
	}

	scam := 75.0
	if ev.ScamCheck != nil {
		switch ev.ScamCheck.RiskLevel {
		case model.RiskLow:
			scam = 95
		case model.RiskMedium:
			scam = 75
		case model.RiskHigh:
			scam = 50
		}
	}

	rating := 60.0
	if ev.Reviews != nil {
		rating = ev.Reviews.OverallRating / 5 * 100
	}

	presence := 70.0
	if ev.Presence != nil && len(ev.Presence.TrustedSites) > 2 {
		presence = 90
	}

	score := credibility*0.30 + scam*0.25 + rating*0.25 + presence*0.20
	return clamp(int(math.Round(score)))
}

// RegistryLegitimacy is the default registered-business path: a blend of
// registry standing, review reputation and scam findings.
func RegistryLegitimacy(ev *model.EvidenceSet) int {
	registry := 55.0
	if ev.Registry != nil {
		switch {
		case ev.Registry.CompanyStatus == "active" && ev.Registry.FilingUpToDate:
			registry = 92
		case ev.Registry.CompanyStatus == "active":
			registry = 78
		default:
			registry = 35
		}
	}

	rating := 65.0
	if ev.Reviews != nil {
		rating = ev.Reviews.OverallRating / 5 * 100
	}

	scam := 90.0
	if ev.ScamCheck != nil && len(ev.ScamCheck.Reports) > 0 {
		scam = 55
	}

	score := registry*0.5 + rating*0.3 + scam*0.2
	return clamp(int(math.Round(score)))
}

// LegitimacyFor selects the scoring path for a legal form.
func LegitimacyFor(form model.LegalForm) LegitimacyFunc {
	if form == model.FormSoleTrader {
		return SoleTraderLegitimacy
	}
	return RegistryLegitimacy
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
