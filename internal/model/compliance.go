package model

// ComplianceStatus is the resolved state of one regulatory requirement.
type ComplianceStatus string

const (
	StatusCompliant     ComplianceStatus = "compliant"
	StatusNonCompliant  ComplianceStatus = "non-compliant"
	StatusPending       ComplianceStatus = "pending"
	StatusExpired       ComplianceStatus = "expired"
	StatusNotApplicable ComplianceStatus = "not-applicable"
)

// ComplianceRequirement is one entry of an industry checklist with its
// status resolved against evidence.
type ComplianceRequirement struct {
	Name             string           `json:"name" yaml:"name"`
	Required         bool             `json:"required" yaml:"required"`
	Status           ComplianceStatus `json:"status" yaml:"-"`
	Details          string           `json:"details,omitempty" yaml:"-"`
	RegulatoryBody   string           `json:"regulatory_body" yaml:"regulatory_body"`
	DocumentRequired string           `json:"document_required" yaml:"document_required"`
	ExpiryDate       string           `json:"expiry_date,omitempty" yaml:"-"`
	RenewalRequired  bool             `json:"renewal_required,omitempty" yaml:"-"`
}

// RegulatoryCompliance is the evaluated checklist for one industry.
type RegulatoryCompliance struct {
	Industry     Industry                `json:"industry"`
	OverallScore int                     `json:"overall_score"` // 0..100
	Requirements []ComplianceRequirement `json:"requirements"`
	// RegulatoryBodies is the deduplicated list of bodies across the
	// requirements, in first-appearance order.
	RegulatoryBodies []string `json:"regulatory_bodies"`
	LastChecked      string   `json:"last_checked"`
	NextReview       string   `json:"next_review"`
}
