package score

import (
	"fmt"
	"strings"

	"vouch/internal/model"
)

// sicByIndustry is a sample of the UK SIC 2007 table, keyed by detected
// industry. Registry evidence takes precedence over this table.
var sicByIndustry = map[model.Industry][]model.SICCode{
	model.IndustryPlumber: {
		{Code: "43220", Description: "Plumbing, heat and air-conditioning installation", Section: "F", Division: "43"},
		{Code: "43300", Description: "Building completion and finishing", Section: "F", Division: "43"},
	},
	model.IndustryRestaurant: {
		{Code: "56101", Description: "Licensed restaurants", Section: "I", Division: "56"},
		{Code: "56102", Description: "Unlicensed restaurants and cafes", Section: "I", Division: "56"},
	},
	model.IndustryEcommerce: {
		{Code: "47910", Description: "Retail sale via mail order houses or via Internet", Section: "G", Division: "47"},
		{Code: "47990", Description: "Other retail sale not in stores, stalls or markets", Section: "G", Division: "47"},
	},
	model.IndustryDefault: {
		{Code: "70221", Description: "Financial management", Section: "M", Division: "70"},
		{Code: "62020", Description: "Information technology consultancy activities", Section: "J", Division: "62"},
	},
}

// SICCodesFor returns the classification codes for an industry: the
// registry's registered codes when available, otherwise the sample table.
func SICCodesFor(industry model.Industry, registry *model.RegistryRecord) []model.SICCode {
	if registry != nil && len(registry.SICCodes) > 0 {
		return registry.SICCodes
	}
	if codes, ok := sicByIndustry[industry]; ok {
		return codes
	}
	return sicByIndustry[model.IndustryDefault]
}

// BuildPurpose assembles the Purpose agent's full analysis: SIC codes,
// activities, trust factors and the clamped overall trust score.
func (s *Scorer) BuildPurpose(form model.LegalForm, industry model.Industry, ev *model.EvidenceSet, compliance model.RegulatoryCompliance) model.BusinessPurpose {
	sicCodes := SICCodesFor(industry, ev.Registry)
	factors := s.TrustFactors(form, ev, compliance, len(sicCodes))

	primary := "Professional services"
	if len(sicCodes) > 0 {
		primary = sicCodes[0].Description
	}
	var secondary []string
	if len(sicCodes) > 1 {
		for _, sic := range sicCodes[1:] {
			secondary = append(secondary, sic.Description)
		}
	}

	return model.BusinessPurpose{
		SICCodes:            sicCodes,
		PrimaryActivity:     primary,
		SecondaryActivities: secondary,
		IndustryAlignment:   alignmentScore(ev.Registry, len(sicCodes)),
		TrustFactors:        factors,
		OverallTrustScore:   OverallTrust(factors),
		Insights:            purposeInsights(sicCodes),
		Recommendations: []string{
			"Continue maintaining current compliance standards",
			"Consider expanding SIC code registration for new service offerings",
			"Update business description on public directories to match SIC classifications",
		},
	}
}

func purposeInsights(sicCodes []model.SICCode) []string {
	insights := []string{
		"Business activities are consistent across all registered platforms",
		"Industry classification matches reported revenue streams and customer reviews",
	}
	if len(sicCodes) > 0 {
		lead := fmt.Sprintf("Primary SIC code %s indicates core business in %s",
			sicCodes[0].Code, strings.ToLower(sicCodes[0].Description))
		insights = append([]string{lead}, insights...)
	}
	return insights
}
