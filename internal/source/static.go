package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"vouch/internal/model"
)

// Static is a deterministic fixture source: it returns the same evidence
// for every query. Tests and the demo mode use static sets; there is no
// randomness anywhere in them.
type Static struct {
	SourceName string
	Evidence   model.Evidence
	Err        error
}

func (s *Static) Name() string { return s.SourceName }

func (s *Static) Fetch(ctx context.Context, q Query) (model.Evidence, error) {
	if err := ctx.Err(); err != nil {
		return model.Evidence{}, err
	}
	if s.Err != nil {
		return model.Evidence{}, s.Err
	}
	ev := s.Evidence
	ev.Source = s.SourceName
	return ev, nil
}

// demoClock pins fixture timestamps so demo output is reproducible.
var demoClock = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// DemoSet builds a full fixture set for a business. The shape of the
// fixtures is derived from the business name alone (an FNV hash picks
// between a strong and a weak online profile), so repeated runs for the
// same name always produce identical evidence.
func DemoSet(businessName string, form model.LegalForm) Set {
	good := goodProfile(businessName)
	slug := strings.ReplaceAll(strings.ToLower(businessName), " ", "")

	incorporated := demoClock.AddDate(-6, 0, 0)
	registry := &model.RegistryRecord{
		RegistrationNumber: "12345678",
		CompanyStatus:      "active",
		IncorporatedOn:     &incorporated,
		RegisteredAddress:  "123 Business Street, London, SW1A 1AA",
		FilingUpToDate:     good,
	}

	search := &model.SearchResults{Results: []model.SearchResult{
		{
			Title:   businessName + " - Professional Services",
			Link:    "https://www." + slug + ".co.uk",
			Snippet: businessName + " provides professional services with over 10 years of experience.",
			Source:  "Business Website",
		},
		{
			Title:   businessName + " - Google Business Profile",
			Link:    "https://google.com/maps",
			Snippet: businessName + " has 127 reviews with an average rating of 4.2 stars.",
			Source:  "Google Business",
		},
		{
			Title:   businessName + " Reviews on Trustpilot",
			Link:    "https://trustpilot.com",
			Snippet: "See what customers are saying about " + businessName + ". 89 reviews - Rated 4.0 out of 5 stars.",
			Source:  "Trustpilot",
		},
	}}
	if good {
		search.Results = append(search.Results, model.SearchResult{
			Title:   businessName + " - Checkatrade",
			Link:    "https://checkatrade.com",
			Snippet: businessName + " is a verified trader on Checkatrade with excellent customer feedback.",
			Source:  "Checkatrade",
		})
	} else {
		search.Results = append(search.Results, model.SearchResult{
			Title:   businessName + " complaints - forum discussion",
			Link:    "https://randomforum.com",
			Snippet: "Anyone had experience with this company? Mixed reviews...",
			Source:  "Forum",
		})
	}

	scam := &model.ScamCheck{IsScam: false, RiskLevel: model.RiskLow,
		Warnings: []string{"No scam reports found", "Business appears legitimate based on available data"}}
	if !good {
		scam.RiskLevel = model.RiskMedium
		scam.Warnings = []string{
			"One unverified complaint found on consumer forum",
			"Business should provide more transparent credentials",
		}
		scam.Reports = []model.ScamReport{{
			Source:      "Consumer Forum",
			Description: "User reported delayed service but issue was eventually resolved",
			Date:        "2024-08-15",
		}}
	}

	sentiment := model.SentimentSplit{Positive: 78, Neutral: 15, Negative: 7}
	trend := model.TrendStable
	if !good {
		sentiment = model.SentimentSplit{Positive: 62, Neutral: 15, Negative: 23}
		trend = model.TrendDeclining
	}
	reviews := &model.ReviewAnalysis{
		OverallRating: 4.1,
		TotalReviews:  261,
		Sentiment:     sentiment,
		RecentTrend:   trend,
		CommonThemes: []model.ReviewTheme{
			{Theme: "Professional Service", Sentiment: model.SentimentPositive, Frequency: 89},
			{Theme: "Good Communication", Sentiment: model.SentimentPositive, Frequency: 76},
			{Theme: "Fair Pricing", Sentiment: model.SentimentPositive, Frequency: 65},
			{Theme: "Quality of Work", Sentiment: model.SentimentPositive, Frequency: 142},
		},
		Detailed: []model.Review{
			{Source: "Google Reviews", Rating: 5, Text: "Excellent service from start to finish.", Date: "2024-11-20", Sentiment: model.SentimentPositive},
			{Source: "Trustpilot", Rating: 4, Text: "Good overall experience. Slight delay in completion.", Date: "2024-11-15", Sentiment: model.SentimentPositive},
			{Source: "Facebook", Rating: 5, Text: "Brilliant service! Fair prices too.", Date: "2024-11-05", Sentiment: model.SentimentPositive},
		},
	}

	presence := &model.OnlinePresence{
		HasWebsite:        true,
		WebsiteSSL:        true,
		SocialMedia:       []string{"Facebook (2.3k followers)", "Instagram (1.1k followers)", "LinkedIn"},
		DirectoryListings: []string{"Google Business", "Bing Places", "Yell.com", "Thompson Local", "192.com"},
		TrustedSites:      []string{"Checkatrade (Verified)", "Trustpilot (4.0)", "Which? Trusted Traders", "TrustATrader"},
	}
	if !good {
		presence.SocialMedia = []string{"Facebook (340 followers)"}
		presence.DirectoryListings = []string{"Google Business", "Yell.com"}
		presence.TrustedSites = []string{"Trustpilot (4.0)", "Google Business"}
		presence.SuspiciousSites = []string{"Listed on unverified directory with conflicting details"}
	}

	address := &model.AddressCheck{
		Address:   "123 Business Street, London, SW1A 1AA",
		Confirmed: true,
		ListingOK: true,
		Detail:    "Business listing matches the registered address",
	}

	set := Set{
		NameSearch:   &Static{SourceName: NameSearch, Evidence: model.Evidence{RetrievedAt: demoClock, Search: search}},
		NameScamDB:   &Static{SourceName: NameScamDB, Evidence: model.Evidence{RetrievedAt: demoClock, ScamCheck: scam}},
		NameReviews:  &Static{SourceName: NameReviews, Evidence: model.Evidence{RetrievedAt: demoClock, Reviews: reviews}},
		NamePresence: &Static{SourceName: NamePresence, Evidence: model.Evidence{RetrievedAt: demoClock, Presence: presence}},
		NameAddress:  &Static{SourceName: NameAddress, Evidence: model.Evidence{RetrievedAt: demoClock, Address: address}},
	}
	if form.IsRegistered() {
		set[NameRegistry] = &Static{SourceName: NameRegistry, Evidence: model.Evidence{RetrievedAt: demoClock, Registry: registry}}
	}
	set[NameCompliance] = &Static{SourceName: NameCompliance, Evidence: model.Evidence{
		RetrievedAt: demoClock,
		Compliance:  demoFindings(good),
	}}
	return set
}

// demoFindings confirms the common credentials so compliance evaluation
// has something to chew on.
func demoFindings(good bool) []model.ComplianceFinding {
	expiry := demoClock.AddDate(10, 0, 0)
	findings := []model.ComplianceFinding{
		{Requirement: "Business Registration", Confirmed: true, ExpiresOn: &expiry},
		{Requirement: "Public Liability Insurance", Confirmed: good, ExpiresOn: &expiry},
		{Requirement: "Gas Safe Registration", Confirmed: good, ExpiresOn: &expiry},
		{Requirement: "Food Hygiene Rating", Confirmed: good, ExpiresOn: &expiry},
		{Requirement: "Data Protection Compliance", Confirmed: true, ExpiresOn: &expiry},
	}
	if !good {
		findings = findings[:2]
	}
	return findings
}

func goodProfile(businessName string) bool {
	h := fnv.New32a()
	_, _ = fmt.Fprint(h, strings.ToLower(businessName))
	return h.Sum32()%10 >= 3
}
