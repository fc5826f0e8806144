// Package classify maps a business name and legal form to an industry tag
// via an ordered keyword rule table. The table is data: it can be replaced
// per jurisdiction without touching the classifier itself.
package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"vouch/internal/model"
)

// Rule is one ordered classification rule. The first rule whose keyword
// matches the lower-cased business name wins. When Refined is set and any
// of RefineKeywords also matches, the rule yields Refined instead of
// Industry; this is how "plumb" beats the generic construction keywords.
type Rule struct {
	Keywords       []string       `yaml:"keywords"`
	Industry       model.Industry `yaml:"industry"`
	RefineKeywords []string       `yaml:"refine_keywords,omitempty"`
	Refined        model.Industry `yaml:"refined,omitempty"`
}

// Classifier evaluates rules top to bottom. It is pure: no I/O, no state,
// safe to memoize per request.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over the given rule table. A nil or empty
// table falls back to the built-in UK rules.
func New(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the industry for a business. Always returns a valid
// tag; names matching no rule resolve to model.IndustryDefault.
func (c *Classifier) Classify(businessName string, form model.LegalForm) model.Industry {
	name := strings.ToLower(businessName)

	for _, rule := range c.rules {
		if !matchesAny(name, rule.Keywords) {
			continue
		}
		if rule.Refined != "" && matchesAny(name, rule.RefineKeywords) {
			return rule.Refined
		}
		return rule.Industry
	}
	return model.IndustryDefault
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// LoadRules reads a replacement rule table from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return rules, nil
}

// DefaultRules returns the built-in UK rule table. Ordering is a
// deliberate precedence policy: the financial rule refines to insurance
// and the construction rule refines to plumber before the generic tag is
// considered, and healthcare is checked before everything else.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"clinic", "medical", "doctor", "dental", "pharmacy"}, Industry: model.IndustryHealthcare},
		{Keywords: []string{"solicitor", "barrister", "legal", "law"}, Industry: model.IndustryLegal},
		{
			Keywords:       []string{"financial", "investment", "insurance", "mortgage", "bank"},
			Industry:       model.IndustryFinancial,
			RefineKeywords: []string{"insurance"},
			Refined:        model.IndustryInsurance,
		},
		{
			Keywords:       []string{"builder", "construction", "contractor", "roofing", "plumbing"},
			Industry:       model.IndustryConstruction,
			RefineKeywords: []string{"plumb"},
			Refined:        model.IndustryPlumber,
		},
		{Keywords: []string{"garage", "auto", "car", "motor", "mechanic"}, Industry: model.IndustryAutomotive},
		{Keywords: []string{"beauty", "salon", "spa", "nail", "hair"}, Industry: model.IndustryBeauty},
		{Keywords: []string{"school", "college", "university", "training", "education"}, Industry: model.IndustryEducation},
		{Keywords: []string{"tech", "software", "digital", "web", "app"}, Industry: model.IndustryTechnology},
		{Keywords: []string{"estate", "property", "letting", "realtor"}, Industry: model.IndustryRealEstate},
		{Keywords: []string{"restaurant", "cafe", "bistro", "eatery", "food"}, Industry: model.IndustryRestaurant},
		{Keywords: []string{"hotel", "inn", "lodge", "resort", "b&b"}, Industry: model.IndustryHospitality},
		{Keywords: []string{"shop", "store", "retail", "boutique"}, Industry: model.IndustryRetail},
		{Keywords: []string{"manufacturing", "factory", "production", "industrial"}, Industry: model.IndustryManufacturing},
		{Keywords: []string{"consulting", "consultant", "advisory", "strategy"}, Industry: model.IndustryConsulting},
		{Keywords: []string{"marketing", "advertising", "agency", "creative"}, Industry: model.IndustryMarketing},
		{Keywords: []string{"transport", "logistics", "courier", "delivery"}, Industry: model.IndustryTransportation},
		{Keywords: []string{"gym", "fitness", "personal trainer", "yoga"}, Industry: model.IndustryFitness},
		{Keywords: []string{"vet", "animal", "pet"}, Industry: model.IndustryVeterinary},
		{Keywords: []string{"accountant", "accounting", "bookkeeping", "tax"}, Industry: model.IndustryAccounting},
		{Keywords: []string{"online", "ecommerce", "e-commerce", "marketplace"}, Industry: model.IndustryEcommerce},
	}
}
