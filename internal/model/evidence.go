package model

import "time"

// Sentiment classifies tone in analysis output and reviews.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// RiskLevel grades scam-report findings.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ReviewTrend describes the recent direction of review sentiment.
type ReviewTrend string

const (
	TrendImproving ReviewTrend = "improving"
	TrendStable    ReviewTrend = "stable"
	TrendDeclining ReviewTrend = "declining"
)

// Evidence is the envelope every source returns. Exactly one of the typed
// payload fields is set, matching the source that produced it. Degraded
// evidence (timeout, network error after retry) keeps the envelope with
// Degraded set and the payload empty; the pipeline proceeds regardless.
type Evidence struct {
	Source      string    `json:"source"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Degraded    bool      `json:"degraded,omitempty"`
	Failure     string    `json:"failure,omitempty"` // why the evidence is degraded

	Registry    *RegistryRecord      `json:"registry,omitempty"`
	Search      *SearchResults       `json:"search,omitempty"`
	Credibility *CredibilityAnalysis `json:"credibility,omitempty"`
	ScamCheck   *ScamCheck           `json:"scam_check,omitempty"`
	Reviews     *ReviewAnalysis      `json:"reviews,omitempty"`
	Presence    *OnlinePresence      `json:"presence,omitempty"`
	Address     *AddressCheck        `json:"address,omitempty"`
	Compliance  []ComplianceFinding  `json:"compliance,omitempty"`
}

// RegistryRecord is a company-registry lookup result (Companies House or
// equivalent).
type RegistryRecord struct {
	RegistrationNumber string     `json:"registration_number"`
	CompanyStatus      string     `json:"company_status"` // active, dissolved, liquidation
	IncorporatedOn     *time.Time `json:"incorporated_on,omitempty"`
	RegisteredAddress  string     `json:"registered_address,omitempty"`
	SICCodes           []SICCode  `json:"sic_codes,omitempty"`
	FilingUpToDate     bool       `json:"filing_up_to_date"`
}

// SearchResult is a single web-search hit about the business.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// SearchResults is the web-search evidence payload.
type SearchResults struct {
	Results []SearchResult `json:"results"`
}

// CredibilityAnalysis is the AI analysis of gathered search results.
type CredibilityAnalysis struct {
	Score     int       `json:"score"` // 0..100
	Sentiment Sentiment `json:"sentiment"`
	Insights  []string  `json:"insights,omitempty"`
	RedFlags  []string  `json:"red_flags,omitempty"`
	Strengths []string  `json:"strengths,omitempty"`
	Concerns  []string  `json:"concerns,omitempty"`
}

// ScamReport is one complaint record from a scam or consumer-protection
// database.
type ScamReport struct {
	Source      string `json:"source"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}

// ScamCheck is the scam-database evidence payload.
type ScamCheck struct {
	IsScam    bool         `json:"is_scam"`
	RiskLevel RiskLevel    `json:"risk_level"`
	Warnings  []string     `json:"warnings,omitempty"`
	Reports   []ScamReport `json:"reports,omitempty"`
}

// SentimentSplit is the percentage breakdown of review sentiment.
type SentimentSplit struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// ReviewTheme is a recurring topic across reviews.
type ReviewTheme struct {
	Theme     string    `json:"theme"`
	Sentiment Sentiment `json:"sentiment"`
	Frequency int       `json:"frequency"`
}

// Review is a single customer review.
type Review struct {
	Source    string    `json:"source"`
	Rating    float64   `json:"rating"` // 0..5
	Text      string    `json:"text,omitempty"`
	Date      string    `json:"date,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
}

// ReviewAnalysis aggregates review-platform evidence.
type ReviewAnalysis struct {
	OverallRating float64        `json:"overall_rating"` // 0..5
	TotalReviews  int            `json:"total_reviews"`
	Sentiment     SentimentSplit `json:"sentiment"`
	CommonThemes  []ReviewTheme  `json:"common_themes,omitempty"`
	RecentTrend   ReviewTrend    `json:"recent_trend"`
	Detailed      []Review       `json:"detailed,omitempty"`
}

// OnlinePresence describes where the business is visible online.
type OnlinePresence struct {
	HasWebsite        bool     `json:"has_website"`
	WebsiteSSL        bool     `json:"website_ssl"`
	SocialMedia       []string `json:"social_media,omitempty"`
	DirectoryListings []string `json:"directory_listings,omitempty"`
	TrustedSites      []string `json:"trusted_sites,omitempty"`
	SuspiciousSites   []string `json:"suspicious_sites,omitempty"`
}

// AddressCheck is the maps/address verification payload.
type AddressCheck struct {
	Address   string `json:"address"`
	Confirmed bool   `json:"confirmed"`
	ListingOK bool   `json:"listing_ok"` // business listing matches the address
	Detail    string `json:"detail,omitempty"`
}

// ComplianceFinding is raw per-credential evidence from a regulatory or
// licensing database, consumed by the compliance rule engine.
type ComplianceFinding struct {
	Requirement string     `json:"requirement"` // matches a template entry name
	Confirmed   bool       `json:"confirmed"`   // credential located and verified
	ExpiresOn   *time.Time `json:"expires_on,omitempty"`
	Detail      string     `json:"detail,omitempty"`
}
