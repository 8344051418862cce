package discover

import (
	"testing"

	"github.com/fundscout/fundscout/internal/model"
)

func testFilter() *LinkFilter {
	return NewLinkFilter(model.FilterConfig{
		Schemes: []string{"http", "https"},
		ExcludedDomains: []string{
			"google.com", "youtube.com", "facebook.com", "duckduckgo.com",
		},
	})
}

func TestIsValidLink(t *testing.T) {
	filter := testFilter()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https link", "https://www.nerdwallet.com/best/credit-cards", true},
		{"http link", "http://grants.gov/apply", true},
		{"empty", "", false},
		{"no scheme", "www.example.com/page", false},
		{"ftp scheme", "ftp://example.com/file", false},
		{"mailto", "mailto:someone@example.com", false},
		{"missing host", "https:///path-only", false},
		{"unparsable authority", "http://[::1:80/", false},
		{"excluded domain", "https://www.google.com/search?q=x", false},
		{"excluded case-insensitive", "https://WWW.YOUTUBE.COM/watch", false},
		// Substring matching over-excludes by design.
		{"excluded as substring", "https://notgoogle.com.evil.example/", false},
		{"substring inside host", "https://mirror.google.com.cdn.net/", false},
		{"unrelated host", "https://grants.example.org/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.IsValidLink(tt.url); got != tt.want {
				t.Errorf("IsValidLink(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsValidLink_Deterministic(t *testing.T) {
	filter := testFilter()

	urls := []string{
		"https://example.com/grants",
		"https://facebook.com/page",
		"not a url",
		"",
	}

	for _, u := range urls {
		first := filter.IsValidLink(u)
		for i := 0; i < 10; i++ {
			if filter.IsValidLink(u) != first {
				t.Fatalf("IsValidLink(%q) is not deterministic", u)
			}
		}
	}
}
