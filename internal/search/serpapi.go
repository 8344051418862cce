package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const defaultSerpAPIURL = "https://serpapi.com/search"

// SerpAPI queries the SerpAPI JSON endpoint. It requires an API key and is
// the provider of choice when scraping result pages is too brittle.
type SerpAPI struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
	} `json:"organic_results"`
}

// NewSerpAPI creates a SerpAPI provider.
func NewSerpAPI(httpClient *http.Client, baseURL, apiKey string, logger *zap.Logger) (*SerpAPI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("serpapi API key is required")
	}
	if baseURL == "" {
		baseURL = defaultSerpAPIURL
	}

	return &SerpAPI{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}, nil
}

// Name returns the provider name
func (s *SerpAPI) Name() string {
	return "serpapi"
}

// Search runs a single-page query against SerpAPI.
func (s *SerpAPI) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	if maxResults > 0 {
		params.Set("num", strconv.Itoa(maxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var searchResp serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var results []Result
	for _, item := range searchResp.OrganicResults {
		if maxResults > 0 && len(results) >= maxResults {
			break
		}
		results = append(results, Result{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
		})
	}

	s.logger.Debug("serpapi search complete",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return results, nil
}
