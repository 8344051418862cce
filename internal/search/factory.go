package search

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/model"
)

// New creates a search provider based on configuration.
func New(cfg model.SearchConfig, httpCfg model.HTTPConfig, logger *zap.Logger) (Provider, error) {
	client := &http.Client{Timeout: httpCfg.Timeout}

	switch strings.ToLower(cfg.Provider) {
	case "duckduckgo", "":
		return NewDuckDuckGo(client, cfg.BaseURL, httpCfg.UserAgent, logger), nil

	case "serpapi":
		return NewSerpAPI(client, cfg.BaseURL, cfg.APIKey, logger)

	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: duckduckgo, serpapi)", cfg.Provider)
	}
}
