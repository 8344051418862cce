package discover

import (
	"net/url"
	"strings"

	"github.com/fundscout/fundscout/internal/model"
)

// LinkFilter validates candidate URLs against accepted schemes and the
// static domain exclusion list. It is pure: identical input always yields
// identical output.
type LinkFilter struct {
	schemes  []string
	excluded []string
}

// NewLinkFilter creates a filter from configuration. Exclusion entries are
// lowercased once here so matching stays case-insensitive.
func NewLinkFilter(cfg model.FilterConfig) *LinkFilter {
	schemes := cfg.Schemes
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}

	excluded := make([]string, 0, len(cfg.ExcludedDomains))
	for _, d := range cfg.ExcludedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			excluded = append(excluded, d)
		}
	}

	return &LinkFilter{
		schemes:  schemes,
		excluded: excluded,
	}
}

// IsValidLink reports whether the URL is an acceptable candidate: non-empty,
// an accepted scheme, a parsable authority, and a host that matches no
// exclusion entry. Exclusion matching is substring-based on purpose; blocking
// too much of a known-noise domain beats letting any of it through.
func (f *LinkFilter) IsValidLink(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	accepted := false
	for _, s := range f.schemes {
		if scheme == s {
			accepted = true
			break
		}
	}
	if !accepted {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}

	for _, excluded := range f.excluded {
		if strings.Contains(host, excluded) {
			return false
		}
	}

	return true
}
