package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestExtractPresence(t *testing.T) {
	page := `<html><body>
		<a href="https://www.facebook.com/acmeplumbing">Facebook</a>
		<a href="https://uk.trustpilot.com/review/acme">ignored - subdomain</a>
		<a href="https://www.trustpilot.com/review/acme">Trustpilot</a>
		<a href="https://checkatrade.com/acme">Checkatrade</a>
		<a href="https://twitter.com/acme">Twitter</a>
		<a href="https://x.com/acme">X</a>
		<a href="/contact">internal</a>
		<a href="https://example.com:8080/acme">other</a>
	</body></html>`

	presence := ExtractPresence(page)

	wantSocial := []string{"Facebook", "X"}
	if !reflect.DeepEqual(presence.SocialMedia, wantSocial) {
		t.Errorf("social = %v, want %v", presence.SocialMedia, wantSocial)
	}
	wantTrusted := []string{"Checkatrade", "Trustpilot"}
	if !reflect.DeepEqual(presence.TrustedSites, wantTrusted) {
		t.Errorf("trusted = %v, want %v", presence.TrustedSites, wantTrusted)
	}
}

func TestExtractPresence_EmptyAndBroken(t *testing.T) {
	if got := ExtractPresence(""); got.SocialMedia != nil || got.TrustedSites != nil {
		t.Errorf("empty page produced %+v", got)
	}
	// html.Parse is lenient; a fragment still parses.
	got := ExtractPresence(`<a href="https://yell.com/biz">Yell`)
	if !reflect.DeepEqual(got.TrustedSites, []string{"Yell.com"}) {
		t.Errorf("fragment trusted = %v", got.TrustedSites)
	}
}

func TestCandidateURL(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Gas Plumbing Ltd", "https://www.acmegasplumbing.co.uk/"},
		{"Smith & Sons Limited", "https://www.smithsons.co.uk/"},
		{"Jane Smith", "https://www.janesmith.co.uk/"},
	}
	for _, tc := range cases {
		if got := candidateURL(tc.name); got != tc.want {
			t.Errorf("candidateURL(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHostOf(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://www.trustpilot.com/review/x", "trustpilot.com"},
		{"https://facebook.com/p", "facebook.com"},
		{"https://example.com:8080/x", "example.com"},
		{"/relative/path", ""},
		{"::bad::", ""},
	}
	for _, tc := range cases {
		if got := hostOf(tc.raw); got != tc.want {
			t.Errorf("hostOf(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestAllowedByRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	w := NewWebsite(5*time.Second, "Vouch/0.1", 1<<20)

	allowed, err := w.allowedByRobots(context.Background(), srv.URL+"/about")
	if err != nil {
		t.Fatalf("allowedByRobots: %v", err)
	}
	if !allowed {
		t.Error("public path should be allowed")
	}

	allowed, err = w.allowedByRobots(context.Background(), srv.URL+"/private/page")
	if err != nil {
		t.Fatalf("allowedByRobots: %v", err)
	}
	if allowed {
		t.Error("disallowed path should be blocked")
	}
}

func TestAllowedByRobots_UnreachableAllows(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	w := NewWebsite(time.Second, "Vouch/0.1", 1<<20)
	allowed, err := w.allowedByRobots(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("allowedByRobots: %v", err)
	}
	if !allowed {
		t.Error("unreachable robots.txt should allow fetching")
	}
}
