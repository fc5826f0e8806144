package compliance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vouch/internal/model"
)

// Template is the static requirement checklist for one industry before
// any evidence is applied.
type Template []model.ComplianceRequirement

// Templates maps industries to their checklists. Industries without an
// entry use the Default template.
type Templates map[model.Industry]Template

// LoadTemplates reads a replacement template set from a YAML file so the
// checklists can be swapped per jurisdiction without code changes.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var templates Templates
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return templates, nil
}

// DefaultTemplates returns the built-in UK requirement checklists.
func DefaultTemplates() Templates {
	return Templates{
		model.IndustryHealthcare: {
			{Name: "CQC Registration", Required: true, RegulatoryBody: "Care Quality Commission", DocumentRequired: "CQC Certificate of Registration"},
			{Name: "Professional Registration (GMC/NMC)", Required: true, RegulatoryBody: "General Medical Council / Nursing & Midwifery Council", DocumentRequired: "Professional Registration Certificate"},
			{Name: "Controlled Drugs License", Required: false, RegulatoryBody: "Home Office", DocumentRequired: "Controlled Drugs License"},
			{Name: "Data Protection Registration", Required: true, RegulatoryBody: "Information Commissioner's Office", DocumentRequired: "ICO Registration Certificate"},
			{Name: "Clinical Governance Framework", Required: true, RegulatoryBody: "NHS England", DocumentRequired: "Clinical Governance Policy"},
		},
		model.IndustryFinancial: {
			{Name: "FCA Authorization", Required: true, RegulatoryBody: "Financial Conduct Authority", DocumentRequired: "FCA Authorization Certificate"},
			{Name: "PRA Authorization", Required: false, RegulatoryBody: "Prudential Regulation Authority", DocumentRequired: "PRA Authorization"},
			{Name: "Anti-Money Laundering Registration", Required: true, RegulatoryBody: "HM Revenue & Customs", DocumentRequired: "AML Registration Certificate"},
			{Name: "Professional Indemnity Insurance", Required: true, RegulatoryBody: "FCA Requirements", DocumentRequired: "PI Insurance Certificate"},
			{Name: "Client Money Protection", Required: true, RegulatoryBody: "Financial Conduct Authority", DocumentRequired: "Client Money Rules Compliance"},
		},
		model.IndustryLegal: {
			{Name: "SRA Authorization", Required: true, RegulatoryBody: "Solicitors Regulation Authority", DocumentRequired: "SRA Practice Certificate"},
			{Name: "Professional Indemnity Insurance", Required: true, RegulatoryBody: "Solicitors Regulation Authority", DocumentRequired: "PI Insurance Certificate"},
			{Name: "Client Account Rules Compliance", Required: true, RegulatoryBody: "Solicitors Regulation Authority", DocumentRequired: "Client Account Certificate"},
			{Name: "Continuing Professional Development", Required: true, RegulatoryBody: "Solicitors Regulation Authority", DocumentRequired: "CPD Compliance Certificate"},
		},
		model.IndustryConstruction: {
			{Name: "Construction Industry Scheme Registration", Required: true, RegulatoryBody: "HM Revenue & Customs", DocumentRequired: "CIS Registration Certificate"},
			{Name: "Health & Safety Executive Compliance", Required: true, RegulatoryBody: "Health & Safety Executive", DocumentRequired: "HSE Compliance Certificate"},
			{Name: "Public Liability Insurance", Required: true, RegulatoryBody: "Industry Requirement", DocumentRequired: "Public Liability Insurance Certificate"},
			{Name: "CSCS Card Scheme", Required: true, RegulatoryBody: "Construction Skills Certification Scheme", DocumentRequired: "CSCS Cards for Workers"},
			{Name: "Waste Carrier License", Required: true, RegulatoryBody: "Environment Agency", DocumentRequired: "Waste Carrier Registration"},
		},
		model.IndustryPlumber: {
			{Name: "Gas Safe Registration", Required: true, RegulatoryBody: "Gas Safe Register", DocumentRequired: "Gas Safe ID Card"},
			{Name: "Water Regulations Approval", Required: true, RegulatoryBody: "Water Supply (Water Fittings) Regulations", DocumentRequired: "WRAS Approval Certificate"},
			{Name: "Public Liability Insurance", Required: true, RegulatoryBody: "Industry Requirement", DocumentRequired: "Public Liability Insurance"},
			{Name: "Competent Person Scheme", Required: false, RegulatoryBody: "Building Regulations", DocumentRequired: "Competent Person Certificate"},
		},
		model.IndustryAutomotive: {
			{Name: "MOT Testing Authorization", Required: false, RegulatoryBody: "Driver & Vehicle Standards Agency", DocumentRequired: "MOT Testing Station Authorization"},
			{Name: "Vehicle Operator License", Required: false, RegulatoryBody: "Traffic Commissioner", DocumentRequired: "O-License Certificate"},
			{Name: "Waste Oil Registration", Required: true, RegulatoryBody: "Environment Agency", DocumentRequired: "Waste Oil Carrier Registration"},
			{Name: "Public Liability Insurance", Required: true, RegulatoryBody: "Industry Requirement", DocumentRequired: "Public Liability Insurance"},
		},
		model.IndustryRestaurant: {
			{Name: "Food Hygiene Rating", Required: true, RegulatoryBody: "Food Standards Agency", DocumentRequired: "Food Hygiene Rating Certificate"},
			{Name: "Premises License", Required: true, RegulatoryBody: "Local Authority", DocumentRequired: "Premises License"},
			{Name: "Alcohol License", Required: false, RegulatoryBody: "Local Authority Licensing", DocumentRequired: "Alcohol License"},
			{Name: "Music License", Required: false, RegulatoryBody: "PRS for Music / PPL", DocumentRequired: "Music License"},
			{Name: "Fire Safety Certificate", Required: true, RegulatoryBody: "Fire & Rescue Service", DocumentRequired: "Fire Risk Assessment"},
		},
		model.IndustryEducation: {
			{Name: "Ofsted Registration", Required: true, RegulatoryBody: "Office for Standards in Education", DocumentRequired: "Ofsted Registration Certificate"},
			{Name: "DBS Checks", Required: true, RegulatoryBody: "Disclosure & Barring Service", DocumentRequired: "Enhanced DBS Certificates"},
			{Name: "Safeguarding Policy", Required: true, RegulatoryBody: "Department for Education", DocumentRequired: "Safeguarding Policy Document"},
			{Name: "Teaching Qualification Recognition", Required: true, RegulatoryBody: "Teaching Regulation Agency", DocumentRequired: "QTS Certificate"},
		},
		model.IndustryBeauty: {
			{Name: "Local Authority Registration", Required: true, RegulatoryBody: "Local Authority Environmental Health", DocumentRequired: "Premises Registration Certificate"},
			{Name: "Professional Insurance", Required: true, RegulatoryBody: "Industry Requirement", DocumentRequired: "Professional Indemnity Insurance"},
			{Name: "Health & Safety Compliance", Required: true, RegulatoryBody: "Health & Safety Executive", DocumentRequired: "Risk Assessment Documentation"},
			{Name: "COSHH Assessment", Required: true, RegulatoryBody: "Health & Safety Executive", DocumentRequired: "COSHH Risk Assessment"},
		},
		model.IndustryTransportation: {
			{Name: "Operator License", Required: true, RegulatoryBody: "Traffic Commissioner", DocumentRequired: "O-License"},
			{Name: "Driver CPC Compliance", Required: true, RegulatoryBody: "Driver & Vehicle Standards Agency", DocumentRequired: "Driver CPC Cards"},
			{Name: "Tachograph Compliance", Required: true, RegulatoryBody: "Driver & Vehicle Standards Agency", DocumentRequired: "Tachograph Calibration Certificates"},
			{Name: "ADR Certification", Required: false, RegulatoryBody: "Driver & Vehicle Standards Agency", DocumentRequired: "ADR Training Certificate"},
		},
		model.IndustryDefault: {
			{Name: "Business Registration", Required: true, RegulatoryBody: "Companies House / HMRC", DocumentRequired: "Certificate of Incorporation / Business Registration"},
			{Name: "Public Liability Insurance", Required: true, RegulatoryBody: "Industry Standard", DocumentRequired: "Public Liability Insurance Certificate"},
			{Name: "Data Protection Compliance", Required: true, RegulatoryBody: "Information Commissioner's Office", DocumentRequired: "GDPR Compliance Documentation"},
		},
	}
}
