// Package compliance evaluates per-industry regulatory checklists against
// gathered evidence.
package compliance

import (
	"math"
	"time"

	"vouch/internal/model"
)

const reviewInterval = 90 * 24 * time.Hour

// Engine resolves requirement statuses from evidence. The clock is
// injected so evaluation stays reproducible under test.
type Engine struct {
	templates Templates
	now       func() time.Time
}

// NewEngine creates an engine over the given template set. Nil templates
// fall back to the built-in UK checklists.
func NewEngine(templates Templates) *Engine {
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &Engine{templates: templates, now: time.Now}
}

// WithClock replaces the engine's clock. Tests use this for fixed dates.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// TemplateFor returns the checklist template for an industry, falling
// back to the generic default checklist.
func (e *Engine) TemplateFor(industry model.Industry) Template {
	if tpl, ok := e.templates[industry]; ok {
		return tpl
	}
	return e.templates[model.IndustryDefault]
}

// Evaluate resolves every template entry for the industry against the
// compliance findings and computes the overall score.
//
// Status resolution per entry:
//   - Compliant: a finding confirms the credential and it is unexpired.
//   - Expired: a finding confirms the credential but it is past expiry.
//   - NotApplicable: the entry is optional and no finding exists.
//   - Pending: anything else, including no evidence at all. Missing
//     evidence is inconclusive data, never an error.
func (e *Engine) Evaluate(industry model.Industry, findings []model.ComplianceFinding) model.RegulatoryCompliance {
	template := e.TemplateFor(industry)
	byName := make(map[string]model.ComplianceFinding, len(findings))
	for _, f := range findings {
		byName[f.Requirement] = f
	}

	now := e.now().UTC()
	requirements := make([]model.ComplianceRequirement, 0, len(template))
	for _, entry := range template {
		req := entry
		finding, found := byName[entry.Name]

		switch {
		case found && finding.Confirmed && !expired(finding, now):
			req.Status = model.StatusCompliant
			req.Details = "All requirements met and up to date"
			if finding.ExpiresOn != nil {
				req.ExpiryDate = finding.ExpiresOn.Format("2006-01-02")
			}
		case found && finding.Confirmed:
			req.Status = model.StatusExpired
			req.Details = "Certificate expired - renewal required"
			req.ExpiryDate = finding.ExpiresOn.Format("2006-01-02")
			req.RenewalRequired = true
		case !found && !entry.Required:
			req.Status = model.StatusNotApplicable
			req.Details = "No evidence found; requirement is optional"
		default:
			req.Status = model.StatusPending
			req.Details = "Verification in progress"
		}
		if found && finding.Detail != "" {
			req.Details = finding.Detail
		}
		requirements = append(requirements, req)
	}

	return model.RegulatoryCompliance{
		Industry:         industry,
		OverallScore:     Score(requirements),
		Requirements:     requirements,
		RegulatoryBodies: dedupeBodies(requirements),
		LastChecked:      now.Format("2006-01-02"),
		NextReview:       now.Add(reviewInterval).Format("2006-01-02"),
	}
}

// Score computes round(compliant / max(required, 1) * 100). The
// denominator counts only required entries while the numerator counts
// every compliant one, required or not: optional compliant items boost
// the score, and only required gaps can cap it.
func Score(requirements []model.ComplianceRequirement) int {
	compliant := 0
	required := 0
	for _, req := range requirements {
		if req.Status == model.StatusCompliant {
			compliant++
		}
		if req.Required {
			required++
		}
	}
	if required < 1 {
		required = 1
	}
	score := int(math.Round(float64(compliant) / float64(required) * 100))
	if score > 100 {
		score = 100
	}
	return score
}

func expired(finding model.ComplianceFinding, now time.Time) bool {
	return finding.ExpiresOn != nil && finding.ExpiresOn.Before(now)
}

func dedupeBodies(requirements []model.ComplianceRequirement) []string {
	seen := make(map[string]bool, len(requirements))
	bodies := make([]string, 0, len(requirements))
	for _, req := range requirements {
		if !seen[req.RegulatoryBody] {
			seen[req.RegulatoryBody] = true
			bodies = append(bodies, req.RegulatoryBody)
		}
	}
	return bodies
}
