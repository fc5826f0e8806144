package model

// Industry is one tag from a fixed closed set, derived from the business
// name and legal form. It is never stored independently of its inputs.
type Industry string

const (
	IndustryHealthcare     Industry = "healthcare"
	IndustryLegal          Industry = "legal"
	IndustryFinancial      Industry = "financial"
	IndustryConstruction   Industry = "construction"
	IndustryPlumber        Industry = "plumber"
	IndustryAutomotive     Industry = "automotive"
	IndustryBeauty         Industry = "beauty"
	IndustryEducation      Industry = "education"
	IndustryTechnology     Industry = "technology"
	IndustryRealEstate     Industry = "realestate"
	IndustryRestaurant     Industry = "restaurant"
	IndustryHospitality    Industry = "hospitality"
	IndustryRetail         Industry = "retail"
	IndustryManufacturing  Industry = "manufacturing"
	IndustryConsulting     Industry = "consulting"
	IndustryMarketing      Industry = "marketing"
	IndustryTransportation Industry = "transportation"
	IndustryFitness        Industry = "fitness"
	IndustryVeterinary     Industry = "veterinary"
	IndustryInsurance      Industry = "insurance"
	IndustryAccounting     Industry = "accounting"
	IndustryEcommerce      Industry = "ecommerce"
	IndustryDefault        Industry = "default"
)

// SICCode is a UK Standard Industrial Classification activity code, used
// for industry-alignment scoring.
type SICCode struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Section     string `json:"section" yaml:"section"`
	Division    string `json:"division" yaml:"division"`
}
