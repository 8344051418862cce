package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundscout/fundscout/internal/model"
	"github.com/fundscout/fundscout/internal/worker"
)

// errNoContent marks a fetched page whose extraction yielded nothing.
var errNoContent = errors.New("extract: no extractable content")

// fetchJob processes one candidate URL: rate-limit, fetch, extract,
// classify. It carries the run context because the pool's own context
// only governs shutdown.
type fetchJob struct {
	ctx      context.Context
	url      string
	pipeline *Pipeline
}

// fetchResult is the outcome for one URL. A nil Opportunity with a nil
// Err means the page was analyzed and judged irrelevant.
type fetchResult struct {
	URL         string
	Opportunity *model.Opportunity
	Err         error
}

func (r *fetchResult) GetError() error {
	return r.Err
}

func (j *fetchJob) Execute(_ context.Context) worker.Result {
	opp, err := j.process(j.ctx)
	return &fetchResult{URL: j.url, Opportunity: opp, Err: err}
}

func (j *fetchJob) process(ctx context.Context) (*model.Opportunity, error) {
	p := j.pipeline

	if err := p.limiter.Wait(ctx, j.url); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	page, err := p.fetcher.Fetch(ctx, j.url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	text, err := p.extractor.Text(page.Body, page.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if text == "" {
		// Recoverable like any other extraction failure; the caller
		// logs the skip with the URL.
		return nil, errNoContent
	}

	opp, err := p.classifier.Classify(ctx, text, j.url)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	return opp, nil
}
