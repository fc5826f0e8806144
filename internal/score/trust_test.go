package score

import (
	"testing"
	"time"

	"vouch/internal/model"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func defaultWeights() model.TrustWeights {
	return model.DefaultConfig().Scoring.Weights
}

func TestOverallTrust_WeightedSum(t *testing.T) {
	// The original five-factor breakdown: weights sum to exactly 100.
	factors := []model.TrustFactor{
		{Name: "Business Registration Legitimacy", Score: 92, Weight: 25},
		{Name: "Industry Alignment", Score: 88, Weight: 20},
		{Name: "Online Reputation", Score: 82, Weight: 20},
		{Name: "Regulatory Compliance", Score: 91, Weight: 20},
		{Name: "Business Longevity & Stability", Score: 78, Weight: 15},
	}

	// 92*.25 + 88*.20 + 82*.20 + 91*.20 + 78*.15 = 86.9 -> 87
	if got := OverallTrust(factors); got != 87 {
		t.Errorf("OverallTrust = %d, want 87", got)
	}
}

func TestOverallTrust_ClampsOverweightedConfig(t *testing.T) {
	// Weights summing to 140 with perfect scores would produce a raw 140.
	// The weight sum is deliberately not normalized, so the clamp is the
	// documented behavior.
	factors := []model.TrustFactor{
		{Score: 100, Weight: 70},
		{Score: 100, Weight: 70},
	}
	if got := OverallTrust(factors); got != 100 {
		t.Errorf("OverallTrust = %d, want clamp to 100", got)
	}
}

func TestOverallTrust_Empty(t *testing.T) {
	if got := OverallTrust(nil); got != 0 {
		t.Errorf("OverallTrust(nil) = %d, want 0", got)
	}
}

func TestTrustFactors_RegistrationByForm(t *testing.T) {
	scorer := NewScorer(defaultWeights()).WithClock(fixedClock)
	compliance := model.RegulatoryCompliance{OverallScore: 91}

	soleTrader := model.NewEvidenceSet()
	factors := scorer.TrustFactors(model.FormSoleTrader, soleTrader, compliance, 2)
	if factors[0].Score != 75 {
		t.Errorf("sole trader registration score = %d, want 75", factors[0].Score)
	}

	registered := model.NewEvidenceSet()
	registered.Registry = &model.RegistryRecord{CompanyStatus: "active", FilingUpToDate: true}
	factors = scorer.TrustFactors(model.FormLimitedCompany, registered, compliance, 2)
	if factors[0].Score != 92 {
		t.Errorf("active registered score = %d, want 92", factors[0].Score)
	}

	missing := model.NewEvidenceSet()
	factors = scorer.TrustFactors(model.FormLimitedCompany, missing, compliance, 2)
	if factors[0].Score != 60 {
		t.Errorf("registered without registry record = %d, want 60", factors[0].Score)
	}
}

func TestTrustFactors_ComplianceFactorTracksEngineScore(t *testing.T) {
	scorer := NewScorer(defaultWeights()).WithClock(fixedClock)
	factors := scorer.TrustFactors(model.FormLimitedCompany, model.NewEvidenceSet(), model.RegulatoryCompliance{OverallScore: 33}, 1)

	for _, f := range factors {
		if f.Name == "Regulatory Compliance" && f.Score != 33 {
			t.Errorf("compliance factor score = %d, want 33", f.Score)
		}
	}
}

func TestSoleTraderLegitimacy_Formula(t *testing.T) {
	ev := model.NewEvidenceSet()
	ev.Credibility = &model.CredibilityAnalysis{Score: 82, Sentiment: model.SentimentPositive}
	ev.ScamCheck = &model.ScamCheck{RiskLevel: model.RiskLow}
	ev.Reviews = &model.ReviewAnalysis{OverallRating: 4.1, TotalReviews: 261}
	ev.Presence = &model.OnlinePresence{TrustedSites: []string{"Checkatrade", "Trustpilot", "Which? Trusted Traders"}}

	// 82*.30 + 95*.25 + 82*.25 + 90*.20 = 86.85 -> 87
	if got := SoleTraderLegitimacy(ev); got != 87 {
		t.Errorf("SoleTraderLegitimacy = %d, want 87", got)
	}
}

func TestSoleTraderLegitimacy_RiskLevels(t *testing.T) {
	base := func(level model.RiskLevel) *model.EvidenceSet {
		ev := model.NewEvidenceSet()
		ev.Credibility = &model.CredibilityAnalysis{Score: 80}
		ev.ScamCheck = &model.ScamCheck{RiskLevel: level}
		ev.Reviews = &model.ReviewAnalysis{OverallRating: 4.0, TotalReviews: 10}
		ev.Presence = &model.OnlinePresence{TrustedSites: []string{"a"}}
		return ev
	}

	low := SoleTraderLegitimacy(base(model.RiskLow))
	medium := SoleTraderLegitimacy(base(model.RiskMedium))
	high := SoleTraderLegitimacy(base(model.RiskHigh))

	if !(low > medium && medium > high) {
		t.Errorf("risk mapping should order low > medium > high, got %d/%d/%d", low, medium, high)
	}
}

func TestLegitimacyFor_Branch(t *testing.T) {
	ev := model.NewEvidenceSet()
	ev.Registry = &model.RegistryRecord{CompanyStatus: "active", FilingUpToDate: true}
	ev.Reviews = &model.ReviewAnalysis{OverallRating: 4.2, TotalReviews: 100}

	registered := LegitimacyFor(model.FormLimitedCompany)(ev)
	if registered < 0 || registered > 100 {
		t.Errorf("registered legitimacy %d out of range", registered)
	}

	// Both paths are deterministic.
	for i := 0; i < 3; i++ {
		if again := LegitimacyFor(model.FormLimitedCompany)(ev); again != registered {
			t.Fatal("legitimacy is not deterministic")
		}
	}
}

func TestRiskFactors_Sentinel(t *testing.T) {
	ev := model.NewEvidenceSet()
	ev.ScamCheck = &model.ScamCheck{RiskLevel: model.RiskLow}
	ev.Reviews = &model.ReviewAnalysis{OverallRating: 4.5, TotalReviews: 50, RecentTrend: model.TrendStable, Sentiment: model.SentimentSplit{Positive: 90, Neutral: 7, Negative: 3}}
	ev.Presence = &model.OnlinePresence{TrustedSites: []string{"Checkatrade", "Trustpilot", "Which?"}}

	factors := RiskFactors(ev)
	if len(factors) != 1 || factors[0] != model.NoConcernsSentinel {
		t.Errorf("expected exactly the sentinel, got %v", factors)
	}
}

func TestRiskFactors_SentinelExclusivity(t *testing.T) {
	ev := model.NewEvidenceSet()
	ev.ScamCheck = &model.ScamCheck{
		RiskLevel: model.RiskMedium,
		Reports:   []model.ScamReport{{Source: "Consumer Forum", Description: "delayed service"}},
	}
	ev.Reviews = &model.ReviewAnalysis{
		OverallRating: 3.2,
		TotalReviews:  40,
		RecentTrend:   model.TrendDeclining,
		Sentiment:     model.SentimentSplit{Positive: 60, Neutral: 17, Negative: 23},
	}
	ev.Presence = &model.OnlinePresence{TrustedSites: []string{"Trustpilot"}}
	ev.Credibility = &model.CredibilityAnalysis{RedFlags: []string{"a", "b", "c"}}

	factors := RiskFactors(ev)
	if len(factors) != 5 {
		t.Errorf("expected all five triggers, got %d: %v", len(factors), factors)
	}
	for _, f := range factors {
		if f == model.NoConcernsSentinel {
			t.Error("sentinel must never appear alongside real risk factors")
		}
	}
}

func TestBuildPurpose_SICCodes(t *testing.T) {
	scorer := NewScorer(defaultWeights()).WithClock(fixedClock)
	ev := model.NewEvidenceSet()

	purpose := scorer.BuildPurpose(model.FormLimitedCompany, model.IndustryPlumber, ev, model.RegulatoryCompliance{OverallScore: 80})
	if len(purpose.SICCodes) != 2 || purpose.SICCodes[0].Code != "43220" {
		t.Errorf("plumber SIC lookup wrong: %+v", purpose.SICCodes)
	}
	if purpose.PrimaryActivity != "Plumbing, heat and air-conditioning installation" {
		t.Errorf("primary activity = %q", purpose.PrimaryActivity)
	}
	if purpose.OverallTrustScore < 0 || purpose.OverallTrustScore > 100 {
		t.Errorf("overall trust %d out of range", purpose.OverallTrustScore)
	}

	// Registry-registered codes take precedence over the sample table.
	ev.Registry = &model.RegistryRecord{SICCodes: []model.SICCode{{Code: "43210", Description: "Electrical installation", Section: "F", Division: "43"}}}
	purpose = scorer.BuildPurpose(model.FormLimitedCompany, model.IndustryPlumber, ev, model.RegulatoryCompliance{})
	if len(purpose.SICCodes) != 1 || purpose.SICCodes[0].Code != "43210" {
		t.Errorf("registry SIC codes should win: %+v", purpose.SICCodes)
	}
}
