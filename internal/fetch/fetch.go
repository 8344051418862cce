package fetch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/model"
)

// Result contains the raw page content for one URL.
type Result struct {
	Body       []byte
	FinalURL   string
	StatusCode int
}

// Fetcher retrieves raw page content. Both strategies share one contract:
// return raw content or fail. Failures are per-URL and recoverable.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Result, error)
}

// New creates the fetcher selected by the configured strategy.
func New(cfg model.FetchConfig, httpCfg model.HTTPConfig, logger *zap.Logger) (Fetcher, error) {
	switch strings.ToLower(cfg.Strategy) {
	case "lightweight", "":
		return NewHTTPFetcher(httpCfg, logger), nil

	case "rendered":
		return NewBrowserFetcher(httpCfg, logger), nil

	default:
		return nil, fmt.Errorf("unknown fetch strategy: %s (supported: lightweight, rendered)", cfg.Strategy)
	}
}
