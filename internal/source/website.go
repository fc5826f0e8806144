package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"vouch/internal/model"
)

// socialHosts maps link hosts to the platform labels reported in online
// presence evidence.
var socialHosts = map[string]string{
	"facebook.com":  "Facebook",
	"instagram.com": "Instagram",
	"linkedin.com":  "LinkedIn",
	"x.com":         "X",
	"twitter.com":   "X",
	"youtube.com":   "YouTube",
	"tiktok.com":    "TikTok",
}

// trustedHosts are review platforms whose outbound links count as
// trusted-platform presence.
var trustedHosts = map[string]string{
	"trustpilot.com":   "Trustpilot",
	"checkatrade.com":  "Checkatrade",
	"trustatrader.com": "TrustATrader",
	"which.co.uk":      "Which? Trusted Traders",
	"feefo.com":        "Feefo",
	"reviews.io":       "Reviews.io",
	"yell.com":         "Yell.com",
}

// Website probes a business's own site for online-presence signals: TLS,
// social links and trusted review platforms. It honors robots.txt before
// fetching, the same way a crawler would.
type Website struct {
	client    *http.Client
	userAgent string
	maxBytes  int64

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
}

// NewWebsite creates a website presence source.
func NewWebsite(timeout time.Duration, userAgent string, maxBytes int64) *Website {
	return &Website{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		robots:    make(map[string]*robotstxt.RobotsData),
	}
}

func (w *Website) Name() string { return NamePresence }

// Fetch derives the candidate site from the business name and extracts
// presence signals from its landing page.
func (w *Website) Fetch(ctx context.Context, q Query) (model.Evidence, error) {
	siteURL := candidateURL(q.BusinessName)

	allowed, err := w.allowedByRobots(ctx, siteURL)
	if err == nil && !allowed {
		return model.Evidence{}, fmt.Errorf("%w: robots.txt disallows %s", ErrUnavailable, siteURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return model.Evidence{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return model.Evidence{}, fmt.Errorf("fetch site: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Evidence{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBytes))
	if err != nil {
		return model.Evidence{}, fmt.Errorf("read body: %w", err)
	}

	presence := ExtractPresence(string(body))
	presence.HasWebsite = true
	presence.WebsiteSSL = resp.TLS != nil || strings.HasPrefix(resp.Request.URL.String(), "https://")

	return model.Evidence{
		Source:      NamePresence,
		RetrievedAt: time.Now().UTC(),
		Presence:    &presence,
	}, nil
}

// ExtractPresence walks the page's anchors and classifies outbound hosts
// into social and trusted-platform listings.
func ExtractPresence(htmlContent string) model.OnlinePresence {
	var presence model.OnlinePresence

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return presence
	}

	social := map[string]bool{}
	trusted := map[string]bool{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				host := hostOf(attr.Val)
				if label, ok := socialHosts[host]; ok {
					social[label] = true
				}
				if label, ok := trustedHosts[host]; ok {
					trusted[label] = true
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	presence.SocialMedia = sortedKeys(social)
	presence.TrustedSites = sortedKeys(trusted)
	return presence
}

func (w *Website) allowedByRobots(ctx context.Context, siteURL string) (bool, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	data, ok := w.robots[parsed.Host]
	w.mu.Unlock()

	if !ok {
		robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
		if err != nil {
			return false, err
		}
		req.Header.Set("User-Agent", w.userAgent)
		resp, err := w.client.Do(req)
		if err != nil {
			// Unreachable robots.txt allows fetching, as crawlers do.
			return true, nil
		}
		defer func() { _ = resp.Body.Close() }()

		data, err = robotstxt.FromResponse(resp)
		if err != nil {
			return true, nil
		}
		w.mu.Lock()
		w.robots[parsed.Host] = data
		w.mu.Unlock()
	}

	return data.TestAgent(parsed.Path, w.userAgent), nil
}

// candidateURL guesses the business's primary domain from its name, the
// same slug form used across search listings.
func candidateURL(businessName string) string {
	slug := strings.ToLower(businessName)
	for _, cut := range []string{" ltd", " limited", " llp", " plc"} {
		slug = strings.TrimSuffix(slug, cut)
	}
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, slug)
	return "https://www." + slug + ".co.uk/"
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}

// sortedKeys keeps evidence deterministic for a fixed page.
func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
