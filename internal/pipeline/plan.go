package pipeline

import (
	"vouch/internal/model"
)

// Step identifiers. These are stable API: callers match on them to
// observe progress, and reports reference them by ID.
const (
	StepInputValidation = "input-validation"
	StepBusinessType    = "business-type-check"
	StepRegistry        = "companies-house"
	StepSICLookup       = "sic-lookup"
	StepActivity        = "activity-analysis"
	StepCompliance      = "regulatory-compliance"
	StepSearch          = "google-search"
	StepMaps            = "maps-verification"
	StepReviews         = "reviews-analysis"
	StepAIAnalysis      = "llm-analysis"
	StepScamCheck       = "scam-check"
	StepPresence        = "online-presence"
	StepTrust           = "trust-calculation"
	StepLegitimacy      = "legitimacy-scoring"
)

type stepDef struct {
	id    string
	name  string
	agent model.AgentName
}

var registeredPlan = []stepDef{
	{StepInputValidation, "Input Validation", model.AgentVerification},
	{StepBusinessType, "Business Type Check", model.AgentVerification},
	{StepRegistry, "Companies House Lookup", model.AgentVerification},
	{StepSICLookup, "SIC Code Lookup", model.AgentPurpose},
	{StepActivity, "Business Activity Analysis", model.AgentPurpose},
	{StepCompliance, "Regulatory Compliance Check", model.AgentVerification},
	{StepSearch, "Google Search Verification", model.AgentVerification},
	{StepMaps, "Google Maps Verification", model.AgentVerification},
	{StepReviews, "Customer Reviews Analysis", model.AgentVerification},
	{StepTrust, "Trust Score Calculation", model.AgentPurpose},
	{StepLegitimacy, "Legitimacy Scoring", model.AgentPurpose},
}

var soleTraderPlan = []stepDef{
	{StepInputValidation, "Input Validation", model.AgentVerification},
	{StepRegistry, "Companies House Lookup", model.AgentVerification},
	{StepSearch, "Google Search Verification", model.AgentVerification},
	{StepAIAnalysis, "AI Credibility Analysis", model.AgentVerification},
	{StepScamCheck, "Scam Database Check", model.AgentVerification},
	{StepReviews, "Customer Reviews Analysis", model.AgentVerification},
	{StepPresence, "Online Presence Check", model.AgentVerification},
	{StepSICLookup, "SIC Code Lookup", model.AgentPurpose},
	{StepActivity, "Business Activity Analysis", model.AgentPurpose},
	{StepCompliance, "Regulatory Compliance Check", model.AgentVerification},
	{StepTrust, "Trust Score Calculation", model.AgentPurpose},
	{StepLegitimacy, "Legitimacy Scoring", model.AgentPurpose},
}

// Plan returns the ordered step list for a legal form. Sole traders get
// the extended reputation-centric plan; every other form gets the
// registry-centric plan. All steps start Pending.
func Plan(form model.LegalForm) []model.VerificationStep {
	defs := registeredPlan
	if form == model.FormSoleTrader {
		defs = soleTraderPlan
	}
	steps := make([]model.VerificationStep, len(defs))
	for i, d := range defs {
		steps[i] = model.VerificationStep{
			ID:          d.id,
			DisplayName: d.name,
			Agent:       d.agent,
			Status:      model.StepPending,
		}
	}
	return steps
}
