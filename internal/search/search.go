package search

import "context"

// Result is a single search hit.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// Provider abstracts a search engine that can return results for a query.
// Implementations may scrape result pages or call an official API. They are
// best-effort: a provider may fail or return an empty slice, and callers
// must treat both as recoverable.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search runs the query and returns at most maxResults results.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
