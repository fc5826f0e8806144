// Package report turns a finished run's evidence and scores into the
// final verification report and renders it for terminals and JSON
// consumers. Assembly is a pure merge: same input, same report.
package report

import (
	"fmt"
	"sort"
	"time"

	"vouch/internal/model"
)

// Input is everything assembly needs from a completed run.
type Input struct {
	Request     model.VerificationRequest
	Industry    model.Industry
	Evidence    *model.EvidenceSet
	Compliance  model.RegulatoryCompliance
	Purpose     model.BusinessPurpose
	Legitimacy  int
	RiskFactors []string
	GeneratedAt time.Time
}

// Assemble builds the report. Sole traders get the reputation-centric
// source summary; every other legal form gets the registry-centric one.
// The two sets are structurally different on purpose.
func Assemble(in Input) model.VerificationReport {
	rep := model.VerificationReport{
		BusinessName:    in.Request.BusinessName,
		LegalForm:       in.Request.LegalForm,
		GeneratedAt:     in.GeneratedAt,
		Industry:        in.Industry,
		LegitimacyScore: in.Legitimacy,
		RiskFactors:     in.RiskFactors,
		Compliance:      in.Compliance,
		BusinessPurpose: in.Purpose,
		Reviews:         reviewSummaries(in.Evidence.Reviews),
		Description:     in.Purpose.PrimaryActivity,
	}

	if reg := in.Evidence.Registry; reg != nil {
		rep.RegistrationNumber = reg.RegistrationNumber
		rep.Address = reg.RegisteredAddress
	}
	if rep.Address == "" && in.Evidence.Address != nil {
		rep.Address = in.Evidence.Address.Address
	}
	rep.Website = websiteOf(in.Evidence.Search)

	if in.Request.LegalForm.IsRegistered() {
		rep.Sources = registrySources(in)
	} else {
		rep.Sources = soleTraderSources(in)
	}
	return rep
}

// websiteOf picks the business's own site out of the search evidence.
// Search sources label the hit that points at the business domain as
// "Business Website"; anything else is a third-party listing.
func websiteOf(sr *model.SearchResults) string {
	if sr == nil {
		return ""
	}
	for _, hit := range sr.Results {
		if hit.Source == "Business Website" && hit.Link != "" {
			return hit.Link
		}
	}
	return ""
}

func registrySources(in Input) []model.SourceResult {
	ev := in.Evidence
	out := make([]model.SourceResult, 0, 5)

	switch {
	case ev.Registry != nil && ev.Registry.CompanyStatus == "active":
		out = append(out, model.SourceResult{
			Name:    "Companies House",
			Status:  model.SourceVerified,
			Details: fmt.Sprintf("Company %s registered, status active", ev.Registry.RegistrationNumber),
		})
	case ev.Registry != nil:
		out = append(out, model.SourceResult{
			Name:    "Companies House",
			Status:  model.SourceWarning,
			Details: fmt.Sprintf("Company status: %s", ev.Registry.CompanyStatus),
		})
	default:
		out = append(out, model.SourceResult{
			Name:    "Companies House",
			Status:  model.SourceFailed,
			Details: "Registry lookup unavailable",
		})
	}

	out = append(out, complianceSource(in.Compliance))
	out = append(out, searchSource(ev.Search))

	switch {
	case ev.Address != nil && ev.Address.Confirmed:
		out = append(out, model.SourceResult{
			Name:    "Google Maps",
			Status:  model.SourceVerified,
			Details: fmt.Sprintf("Business location confirmed at %s", ev.Address.Address),
		})
	case ev.Address != nil:
		out = append(out, model.SourceResult{
			Name:    "Google Maps",
			Status:  model.SourceWarning,
			Details: "Listed address could not be confirmed",
		})
	default:
		out = append(out, model.SourceResult{
			Name:    "Google Maps",
			Status:  model.SourceFailed,
			Details: "Maps verification unavailable",
		})
	}

	out = append(out, reviewsSource(ev.Reviews))
	return out
}

func soleTraderSources(in Input) []model.SourceResult {
	ev := in.Evidence
	out := make([]model.SourceResult, 0, 6)

	out = append(out, searchSource(ev.Search))

	switch {
	case ev.Credibility != nil && ev.Credibility.Score > 70:
		out = append(out, model.SourceResult{
			Name:    "AI Analysis",
			Status:  model.SourceVerified,
			Details: fmt.Sprintf("Credibility score %d/100, %s sentiment", ev.Credibility.Score, ev.Credibility.Sentiment),
		})
	case ev.Credibility != nil:
		out = append(out, model.SourceResult{
			Name:    "AI Analysis",
			Status:  model.SourceWarning,
			Details: fmt.Sprintf("Credibility score %d/100", ev.Credibility.Score),
		})
	default:
		out = append(out, model.SourceResult{
			Name:    "AI Analysis",
			Status:  model.SourceFailed,
			Details: "Credibility analysis unavailable",
		})
	}

	switch {
	case ev.ScamCheck != nil && !ev.ScamCheck.IsScam && ev.ScamCheck.RiskLevel == model.RiskLow:
		out = append(out, model.SourceResult{
			Name:    "Scam Database",
			Status:  model.SourceVerified,
			Details: "No scam reports found",
		})
	case ev.ScamCheck != nil && !ev.ScamCheck.IsScam && ev.ScamCheck.RiskLevel == model.RiskMedium:
		out = append(out, model.SourceResult{
			Name:    "Scam Database",
			Status:  model.SourceWarning,
			Details: fmt.Sprintf("Medium risk: %d warning(s) on record", len(ev.ScamCheck.Warnings)),
		})
	case ev.ScamCheck != nil:
		out = append(out, model.SourceResult{
			Name:    "Scam Database",
			Status:  model.SourceFailed,
			Details: fmt.Sprintf("%d scam report(s) on record", len(ev.ScamCheck.Reports)),
		})
	default:
		out = append(out, model.SourceResult{
			Name:    "Scam Database",
			Status:  model.SourceFailed,
			Details: "Scam database unavailable",
		})
	}

	out = append(out, reviewsSource(ev.Reviews))

	switch {
	case ev.Presence != nil && len(ev.Presence.TrustedSites) > 2:
		out = append(out, model.SourceResult{
			Name:    "Online Presence",
			Status:  model.SourceVerified,
			Details: fmt.Sprintf("Listed on %d trusted platforms", len(ev.Presence.TrustedSites)),
		})
	case ev.Presence != nil:
		out = append(out, model.SourceResult{
			Name:    "Online Presence",
			Status:  model.SourceWarning,
			Details: "Limited footprint on trusted platforms",
		})
	default:
		out = append(out, model.SourceResult{
			Name:    "Online Presence",
			Status:  model.SourceFailed,
			Details: "Presence check unavailable",
		})
	}

	out = append(out, complianceSource(in.Compliance))
	return out
}

func complianceSource(rc model.RegulatoryCompliance) model.SourceResult {
	status := model.SourceFailed
	switch {
	case rc.OverallScore >= 80:
		status = model.SourceVerified
	case rc.OverallScore >= 60:
		status = model.SourceWarning
	}
	return model.SourceResult{
		Name:    "Regulatory Compliance",
		Status:  status,
		Details: fmt.Sprintf("Compliance score %d/100 for %s industry", rc.OverallScore, rc.Industry),
	}
}

func searchSource(search *model.SearchResults) model.SourceResult {
	if search == nil || len(search.Results) == 0 {
		return model.SourceResult{
			Name:    "Google Search",
			Status:  model.SourceFailed,
			Details: "No search results found",
		}
	}
	return model.SourceResult{
		Name:    "Google Search",
		Status:  model.SourceVerified,
		Details: fmt.Sprintf("%d results found", len(search.Results)),
	}
}

func reviewsSource(reviews *model.ReviewAnalysis) model.SourceResult {
	switch {
	case reviews != nil && reviews.OverallRating > 4:
		return model.SourceResult{
			Name:    "Customer Reviews",
			Status:  model.SourceVerified,
			Details: fmt.Sprintf("%.1f average across %d reviews", reviews.OverallRating, reviews.TotalReviews),
		}
	case reviews != nil:
		return model.SourceResult{
			Name:    "Customer Reviews",
			Status:  model.SourceWarning,
			Details: fmt.Sprintf("%.1f average across %d reviews", reviews.OverallRating, reviews.TotalReviews),
		}
	}
	return model.SourceResult{
		Name:    "Customer Reviews",
		Status:  model.SourceFailed,
		Details: "Review platforms unavailable",
	}
}

// reviewSummaries rolls detailed reviews up per platform, ordered by
// platform name so output is stable.
func reviewSummaries(reviews *model.ReviewAnalysis) []model.ReviewSummary {
	if reviews == nil || len(reviews.Detailed) == 0 {
		return nil
	}
	type agg struct {
		total float64
		count int
	}
	bySource := make(map[string]*agg)
	for _, rv := range reviews.Detailed {
		a, ok := bySource[rv.Source]
		if !ok {
			a = &agg{}
			bySource[rv.Source] = a
		}
		a.total += rv.Rating
		a.count++
	}
	names := make([]string, 0, len(bySource))
	for name := range bySource {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.ReviewSummary, 0, len(names))
	for _, name := range names {
		a := bySource[name]
		out = append(out, model.ReviewSummary{
			Source: name,
			Rating: a.total / float64(a.count),
			Count:  a.count,
		})
	}
	return out
}
