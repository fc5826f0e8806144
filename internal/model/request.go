package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput indicates a request that fails validation before any
// pipeline work starts.
var ErrInvalidInput = errors.New("invalid verification request")

// LegalForm is the declared registration type of a business. It selects
// the pipeline plan and the legitimacy scoring path.
type LegalForm string

const (
	FormLimitedCompany LegalForm = "limited_company"
	FormSoleTrader     LegalForm = "sole_trader"
	FormPartnership    LegalForm = "partnership"
	FormLLP            LegalForm = "llp"
	FormPlc            LegalForm = "plc"
	FormCharity        LegalForm = "charity"
	FormOther          LegalForm = "other"
)

// legalFormLabels maps canonical forms to their display names.
var legalFormLabels = map[LegalForm]string{
	FormLimitedCompany: "Limited Company",
	FormSoleTrader:     "Sole Trader",
	FormPartnership:    "Partnership",
	FormLLP:            "LLP",
	FormPlc:            "Plc",
	FormCharity:        "Charity",
	FormOther:          "Other",
}

func (f LegalForm) String() string {
	if label, ok := legalFormLabels[f]; ok {
		return label
	}
	return string(f)
}

// IsRegistered reports whether the form carries a company-registry record.
// Sole traders have no registry entry, so the registry lookup is skipped.
func (f LegalForm) IsRegistered() bool {
	return f != FormSoleTrader
}

// ParseLegalForm parses a display string ("Limited Company", "sole trader")
// into a canonical LegalForm. Unknown strings return an error.
func ParseLegalForm(s string) (LegalForm, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch LegalForm(normalized) {
	case FormLimitedCompany, FormSoleTrader, FormPartnership, FormLLP, FormPlc, FormCharity, FormOther:
		return LegalForm(normalized), nil
	}
	// Accept a couple of common aliases seen in registry exports.
	switch normalized {
	case "ltd", "limited":
		return FormLimitedCompany, nil
	case "limited_liability_partnership":
		return FormLLP, nil
	case "public_limited_company":
		return FormPlc, nil
	}
	return "", errors.New("unknown legal form: " + s)
}

// VerificationRequest is the immutable input to a verification run.
type VerificationRequest struct {
	BusinessName string    `json:"business_name"`
	LegalForm    LegalForm `json:"legal_form"`
}

// Validate rejects requests that must never start a pipeline.
func (r VerificationRequest) Validate() error {
	if strings.TrimSpace(r.BusinessName) == "" {
		return fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}
	if _, ok := legalFormLabels[r.LegalForm]; !ok {
		return fmt.Errorf("%w: unknown legal form %q", ErrInvalidInput, string(r.LegalForm))
	}
	return nil
}
