package model

import "time"

// NoConcernsSentinel is the single entry RiskFactors carries when no risk
// trigger fired. A one-element list equal to this string means "no risk";
// it never appears alongside real risk factors.
const NoConcernsSentinel = "No major concerns identified"

// SourceStatus summarizes how a verification source fared.
type SourceStatus string

const (
	SourceVerified SourceStatus = "verified"
	SourceWarning  SourceStatus = "warning"
	SourceFailed   SourceStatus = "failed"
)

// SourceResult is the per-source outcome shown in the final report.
type SourceResult struct {
	Name    string       `json:"name"`
	Status  SourceStatus `json:"status"`
	Details string       `json:"details"`
}

// ReviewSummary is a per-platform review rollup for the report.
type ReviewSummary struct {
	Source string  `json:"source"`
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
	Link   string  `json:"link,omitempty"`
}

// VerificationReport is the root aggregate produced exactly once at
// pipeline completion and never mutated afterwards. For a fixed request
// and evidence set the report is byte-for-byte reproducible apart from
// GeneratedAt, which the assembler takes from the injected clock.
type VerificationReport struct {
	BusinessName       string    `json:"business_name"`
	LegalForm          LegalForm `json:"legal_form"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	Address            string    `json:"address,omitempty"`
	Website            string    `json:"website,omitempty"`
	Description        string    `json:"description,omitempty"`
	GeneratedAt        time.Time `json:"generated_at"`

	Industry        Industry `json:"industry"`
	LegitimacyScore int      `json:"legitimacy_score"` // 0..100
	RiskFactors     []string `json:"risk_factors"`

	Compliance      RegulatoryCompliance `json:"compliance"`
	BusinessPurpose BusinessPurpose      `json:"business_purpose"`
	Reviews         []ReviewSummary      `json:"reviews,omitempty"`

	// Sources follows the sole-trader template set or the registry-based
	// set depending on legal form; the two are structurally different on
	// purpose and are never unified.
	Sources []SourceResult `json:"verification_sources"`
}
