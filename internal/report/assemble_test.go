package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"vouch/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func registeredInput() Input {
	ev := model.NewEvidenceSet()
	ev.Add(model.Evidence{Source: "registry", Registry: &model.RegistryRecord{
		RegistrationNumber: "12345678",
		CompanyStatus:      "active",
		RegisteredAddress:  "123 Business Street, London",
	}})
	ev.Add(model.Evidence{Source: "search", Search: &model.SearchResults{Results: []model.SearchResult{
		{Title: "hit"},
		{Title: "Acme Ltd", Link: "https://www.acmeltd.co.uk", Source: "Business Website"},
	}}})
	ev.Add(model.Evidence{Source: "address", Address: &model.AddressCheck{Address: "123 Business Street, London", Confirmed: true}})
	ev.Add(model.Evidence{Source: "reviews", Reviews: &model.ReviewAnalysis{OverallRating: 4.5, TotalReviews: 10}})

	return Input{
		Request:     model.VerificationRequest{BusinessName: "Acme Ltd", LegalForm: model.FormLimitedCompany},
		Industry:    model.IndustryPlumber,
		Evidence:    ev,
		Compliance:  model.RegulatoryCompliance{Industry: model.IndustryPlumber, OverallScore: 85},
		Purpose:     model.BusinessPurpose{PrimaryActivity: "Plumbing installation", OverallTrustScore: 88},
		Legitimacy:  90,
		RiskFactors: []string{model.NoConcernsSentinel},
		GeneratedAt: testNow,
	}
}

func soleTraderInput() Input {
	ev := model.NewEvidenceSet()
	ev.Add(model.Evidence{Source: "search", Search: &model.SearchResults{Results: []model.SearchResult{{Title: "hit"}, {Title: "hit2"}}}})
	ev.Add(model.Evidence{Source: "ai_analysis", Credibility: &model.CredibilityAnalysis{Score: 82, Sentiment: model.SentimentPositive}})
	ev.Add(model.Evidence{Source: "scamdb", ScamCheck: &model.ScamCheck{IsScam: false, RiskLevel: model.RiskLow}})
	ev.Add(model.Evidence{Source: "reviews", Reviews: &model.ReviewAnalysis{OverallRating: 4.7, TotalReviews: 31}})
	ev.Add(model.Evidence{Source: "presence", Presence: &model.OnlinePresence{TrustedSites: []string{"a", "b", "c"}}})

	return Input{
		Request:     model.VerificationRequest{BusinessName: "Jane Smith", LegalForm: model.FormSoleTrader},
		Industry:    model.IndustryDefault,
		Evidence:    ev,
		Compliance:  model.RegulatoryCompliance{OverallScore: 85},
		Purpose:     model.BusinessPurpose{PrimaryActivity: "Professional services", OverallTrustScore: 80},
		Legitimacy:  84,
		RiskFactors: []string{model.NoConcernsSentinel},
		GeneratedAt: testNow,
	}
}

func sourceNames(rep model.VerificationReport) []string {
	names := make([]string, 0, len(rep.Sources))
	for _, src := range rep.Sources {
		names = append(names, src.Name)
	}
	return names
}

func sourceStatus(t *testing.T, rep model.VerificationReport, name string) model.SourceStatus {
	t.Helper()
	for _, src := range rep.Sources {
		if src.Name == name {
			return src.Status
		}
	}
	t.Fatalf("source %q not in report", name)
	return ""
}

func TestAssemble_RegisteredTemplate(t *testing.T) {
	rep := Assemble(registeredInput())

	want := []string{"Companies House", "Regulatory Compliance", "Google Search", "Google Maps", "Customer Reviews"}
	if got := sourceNames(rep); !reflect.DeepEqual(got, want) {
		t.Errorf("sources = %v, want %v", got, want)
	}
	if rep.RegistrationNumber != "12345678" {
		t.Errorf("registration number = %q", rep.RegistrationNumber)
	}
	if rep.Address != "123 Business Street, London" {
		t.Errorf("address = %q", rep.Address)
	}
	for _, src := range rep.Sources {
		if src.Status != model.SourceVerified {
			t.Errorf("source %s = %s, want verified", src.Name, src.Status)
		}
	}
}

func TestAssemble_SoleTraderTemplate(t *testing.T) {
	rep := Assemble(soleTraderInput())

	want := []string{"Google Search", "AI Analysis", "Scam Database", "Customer Reviews", "Online Presence", "Regulatory Compliance"}
	if got := sourceNames(rep); !reflect.DeepEqual(got, want) {
		t.Errorf("sources = %v, want %v", got, want)
	}
	if got := sourceStatus(t, rep, "Regulatory Compliance"); got != model.SourceVerified {
		t.Errorf("compliance at 85%%: status = %s, want verified", got)
	}
	if rep.RegistrationNumber != "" {
		t.Errorf("unexpected registration number %q", rep.RegistrationNumber)
	}
}

func TestAssemble_Website(t *testing.T) {
	rep := Assemble(registeredInput())
	if rep.Website != "https://www.acmeltd.co.uk" {
		t.Errorf("website = %q, want the own-site search hit", rep.Website)
	}

	// Without an own-site hit the field stays empty.
	if rep := Assemble(soleTraderInput()); rep.Website != "" {
		t.Errorf("website = %q, want empty", rep.Website)
	}
}

func TestAssemble_ComplianceThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  model.SourceStatus
	}{
		{85, model.SourceVerified},
		{80, model.SourceVerified},
		{79, model.SourceWarning},
		{60, model.SourceWarning},
		{59, model.SourceFailed},
		{0, model.SourceFailed},
	}
	for _, tc := range cases {
		in := registeredInput()
		in.Compliance.OverallScore = tc.score
		rep := Assemble(in)
		if got := sourceStatus(t, rep, "Regulatory Compliance"); got != tc.want {
			t.Errorf("score %d: status = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestAssemble_ReviewThreshold(t *testing.T) {
	in := registeredInput()
	in.Evidence.Reviews.OverallRating = 4.0 // boundary: verified needs strictly above 4
	rep := Assemble(in)
	if got := sourceStatus(t, rep, "Customer Reviews"); got != model.SourceWarning {
		t.Errorf("rating 4.0: status = %s, want warning", got)
	}

	in.Evidence.Reviews = nil
	in.Evidence.BySource["reviews"] = model.Evidence{Source: "reviews", Degraded: true}
	rep = Assemble(in)
	if got := sourceStatus(t, rep, "Customer Reviews"); got != model.SourceFailed {
		t.Errorf("missing reviews: status = %s, want failed", got)
	}
}

func TestAssemble_PresenceThreshold(t *testing.T) {
	in := soleTraderInput()
	in.Evidence.Presence.TrustedSites = []string{"a", "b"} // verified needs more than 2
	rep := Assemble(in)
	if got := sourceStatus(t, rep, "Online Presence"); got != model.SourceWarning {
		t.Errorf("two trusted sites: status = %s, want warning", got)
	}
}

func TestAssemble_CredibilityThreshold(t *testing.T) {
	in := soleTraderInput()
	in.Evidence.Credibility.Score = 70 // verified needs strictly above 70
	rep := Assemble(in)
	if got := sourceStatus(t, rep, "AI Analysis"); got != model.SourceWarning {
		t.Errorf("score 70: status = %s, want warning", got)
	}
}

func TestAssemble_ScamStatuses(t *testing.T) {
	in := soleTraderInput()
	in.Evidence.ScamCheck.RiskLevel = model.RiskMedium
	if got := sourceStatus(t, Assemble(in), "Scam Database"); got != model.SourceWarning {
		t.Errorf("medium risk: status = %s, want warning", got)
	}

	in.Evidence.ScamCheck.IsScam = true
	in.Evidence.ScamCheck.Reports = []model.ScamReport{{Source: "reportscam", Description: "upfront payment taken"}}
	if got := sourceStatus(t, Assemble(in), "Scam Database"); got != model.SourceFailed {
		t.Errorf("scam reports: status = %s, want failed", got)
	}
}

func TestAssemble_Pure(t *testing.T) {
	first := Assemble(registeredInput())
	second := Assemble(registeredInput())
	if !reflect.DeepEqual(first, second) {
		t.Error("same input produced different reports")
	}
}

func TestReviewSummaries(t *testing.T) {
	reviews := &model.ReviewAnalysis{Detailed: []model.Review{
		{Source: "Trustpilot", Rating: 4.0},
		{Source: "Google", Rating: 5.0},
		{Source: "Google", Rating: 4.0},
	}}
	got := reviewSummaries(reviews)
	want := []model.ReviewSummary{
		{Source: "Google", Rating: 4.5, Count: 2},
		{Source: "Trustpilot", Rating: 4.0, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("summaries = %+v, want %+v", got, want)
	}

	if reviewSummaries(nil) != nil {
		t.Error("nil reviews should yield nil summaries")
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	rep := Assemble(registeredInput())
	var buf bytes.Buffer
	if err := RenderJSON(&buf, &rep); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var decoded model.VerificationReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.BusinessName != rep.BusinessName || len(decoded.Sources) != len(rep.Sources) {
		t.Error("decoded report lost fields")
	}
}

func TestRenderText_MentionsSources(t *testing.T) {
	rep := Assemble(registeredInput())
	var buf bytes.Buffer
	if err := RenderText(&buf, &rep); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{"Acme Ltd", "Companies House", "Legitimacy score: 90/100"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("output missing %q", fragment)
		}
	}
}
