package discover

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/model"
	"github.com/fundscout/fundscout/internal/search"
	"github.com/fundscout/fundscout/internal/worker"
)

// ErrExhausted is returned when no candidate URLs were found and the
// failsafe list is empty. It is the single fatal discovery condition.
var ErrExhausted = errors.New("discovery exhausted: no candidate urls and empty failsafe list")

// Discoverer turns the frozen query set into a deduplicated candidate URL
// set by running each query against the search provider.
type Discoverer struct {
	provider   search.Provider
	filter     *LinkFilter
	pacer      *worker.Pacer
	failsafe   []string
	maxResults int
	logger     *zap.Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(provider search.Provider, filter *LinkFilter, pacer *worker.Pacer, cfg model.SearchConfig, failsafe []string, logger *zap.Logger) *Discoverer {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	return &Discoverer{
		provider:   provider,
		filter:     filter,
		pacer:      pacer,
		failsafe:   failsafe,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Discover runs every query and collects valid, globally unique result
// URLs. Per-query failures and empty result sets are logged and skipped.
// When live discovery yields nothing the configured failsafe list is
// returned verbatim; if that is empty too, ErrExhausted.
func (d *Discoverer) Discover(ctx context.Context, queries []model.Query) ([]string, error) {
	var candidates []string
	seen := make(map[string]bool)

	for i, query := range queries {
		if i > 0 {
			// Randomized pause between queries so the provider does
			// not throttle the run.
			if err := d.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		results, err := d.provider.Search(ctx, query.Text, d.maxResults)
		if err != nil {
			d.logger.Warn("query skipped",
				zap.String("query", query.Text),
				zap.String("provider", d.provider.Name()),
				zap.Error(err))
			continue
		}
		if len(results) == 0 {
			d.logger.Info("no results for query", zap.String("query", query.Text))
			continue
		}

		for _, result := range results {
			if !d.filter.IsValidLink(result.URL) {
				continue
			}
			if seen[result.URL] {
				continue
			}
			seen[result.URL] = true
			candidates = append(candidates, result.URL)
		}
	}

	if len(candidates) == 0 {
		if len(d.failsafe) == 0 {
			return nil, ErrExhausted
		}
		d.logger.Warn("live discovery found no valid urls, using failsafe list",
			zap.Int("failsafe_count", len(d.failsafe)))
		return append([]string(nil), d.failsafe...), nil
	}

	d.logger.Info("discovery complete",
		zap.Int("queries", len(queries)),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}
