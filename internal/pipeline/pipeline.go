package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/classify"
	"github.com/fundscout/fundscout/internal/extract"
	"github.com/fundscout/fundscout/internal/fetch"
	"github.com/fundscout/fundscout/internal/model"
	"github.com/fundscout/fundscout/internal/rank"
	"github.com/fundscout/fundscout/internal/worker"
)

// QueryExpander grows the seed query set. The pipeline only needs the
// expansion operation, not the expander's scraping machinery.
type QueryExpander interface {
	Expand(ctx context.Context, seeds []string) []model.Query
}

// URLDiscoverer turns the frozen query set into candidate URLs.
type URLDiscoverer interface {
	Discover(ctx context.Context, queries []model.Query) ([]string, error)
}

// Pipeline orchestrates the complete discovery run:
// expand -> discover -> fetch/extract/classify fan-out -> rank.
// Each phase freezes its output before the next phase reads it.
type Pipeline struct {
	seedQueries []model.Query
	expander    QueryExpander // nil when expansion is disabled
	discoverer  URLDiscoverer
	fetcher    fetch.Fetcher
	extractor  extract.Extractor
	classifier classify.Classifier
	limiter    *worker.Limiter
	workers    int
	threshold  int
	logger     *zap.Logger
}

// New creates a pipeline from its collaborators.
func New(cfg *model.Config, expander QueryExpander, discoverer URLDiscoverer, fetcher fetch.Fetcher, extractor extract.Extractor, classifier classify.Classifier, logger *zap.Logger) *Pipeline {
	workers := cfg.Concurrency.FetchWorkers
	if workers <= 0 {
		workers = 8
	}

	seeds := make([]model.Query, len(cfg.Seeds))
	for i, s := range cfg.Seeds {
		seeds[i] = model.Query{Text: s, Provenance: model.ProvenanceSeed}
	}

	return &Pipeline{
		seedQueries: seeds,
		expander:    expander,
		discoverer:  discoverer,
		fetcher:     fetcher,
		extractor:   extractor,
		classifier:  classifier,
		limiter:     worker.NewLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst),
		workers:     workers,
		threshold:   cfg.Rank.Threshold,
		logger:      logger,
	}
}

// Run executes the full pipeline and returns the ranked opportunities.
// The only fatal condition is discovery exhaustion; every per-query and
// per-URL failure degrades locally.
func (p *Pipeline) Run(ctx context.Context) ([]model.Opportunity, error) {
	queries := p.buildQueries(ctx)
	p.logger.Info("query set frozen", zap.Int("queries", len(queries)))

	candidates, err := p.discoverer.Discover(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	p.logger.Info("candidate set frozen", zap.Int("urls", len(candidates)))

	opportunities := p.processCandidates(ctx, candidates)

	ranked := rank.Rank(opportunities, p.threshold)
	p.logger.Info("run complete",
		zap.Int("analyzed", len(opportunities)),
		zap.Int("ranked", len(ranked)))

	return ranked, nil
}

// buildQueries returns the frozen working query set: the seeds alone
// when expansion is off, otherwise the expander's superset.
func (p *Pipeline) buildQueries(ctx context.Context) []model.Query {
	if p.expander == nil {
		return p.seedQueries
	}

	texts := make([]string, len(p.seedQueries))
	for i, q := range p.seedQueries {
		texts[i] = q.Text
	}
	return p.expander.Expand(ctx, texts)
}

// processCandidates fans out one job per candidate URL on the bounded
// worker pool and collects the opportunities.
func (p *Pipeline) processCandidates(ctx context.Context, candidates []string) []model.Opportunity {
	pool := worker.NewPool(p.workers)
	pool.Start()

	for _, url := range candidates {
		pool.Submit(&fetchJob{ctx: ctx, url: url, pipeline: p})
	}

	results := pool.Wait()

	var opportunities []model.Opportunity
	for _, result := range results {
		fr := result.(*fetchResult)
		if fr.Err != nil {
			p.logger.Warn("url skipped",
				zap.String("url", fr.URL),
				zap.Error(fr.Err))
			continue
		}
		if fr.Opportunity != nil {
			opportunities = append(opportunities, *fr.Opportunity)
		}
	}

	return opportunities
}
