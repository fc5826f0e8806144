package model

// TrustFactor is one weighted component of the overall trust score.
// Weights across a factor set need not sum to 100; the overall-score
// consumer clamps the weighted sum to [0,100].
type TrustFactor struct {
	Name    string `json:"factor" yaml:"factor"`
	Score   int    `json:"score" yaml:"score"`   // 0..100
	Weight  int    `json:"weight" yaml:"weight"` // 0..100
	Details string `json:"details,omitempty" yaml:"-"`
}

// BusinessPurpose is the Purpose agent's analysis of what the business
// actually does and how much to trust it.
type BusinessPurpose struct {
	SICCodes            []SICCode     `json:"sic_codes"`
	PrimaryActivity     string        `json:"primary_activity"`
	SecondaryActivities []string      `json:"secondary_activities,omitempty"`
	IndustryAlignment   int           `json:"industry_alignment"` // 0..100
	TrustFactors        []TrustFactor `json:"trust_factors"`
	OverallTrustScore   int           `json:"overall_trust_score"` // 0..100, clamped
	Insights            []string      `json:"insights,omitempty"`
	Recommendations     []string      `json:"recommendations,omitempty"`
}
