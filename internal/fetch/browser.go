package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/model"
)

// BrowserFetcher is the rendered strategy: a headless browser tab per URL,
// returning the DOM after scripts have run. Every fetch owns its allocator
// and tab and releases them on all exit paths, so one slow or crashed page
// cannot leak into the next.
type BrowserFetcher struct {
	allocOpts []chromedp.ExecAllocatorOption
	timeout   time.Duration
	logger    *zap.Logger
}

// NewBrowserFetcher creates a new BrowserFetcher.
func NewBrowserFetcher(cfg model.HTTPConfig, logger *zap.Logger) *BrowserFetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &BrowserFetcher{
		allocOpts: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,
			chromedp.UserAgent(cfg.UserAgent),
			chromedp.Flag("accept-language", "en-US,en;q=0.9"),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("disable-extensions", ""),
		),
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch navigates to the URL in a fresh tab and returns the rendered DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, f.allocOpts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, f.timeout)
	defer timeoutCancel()

	var rendered, finalURL string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitVisible("body"),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &rendered),
	)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	f.logger.Debug("rendered",
		zap.String("url", rawURL),
		zap.String("final_url", finalURL),
		zap.Int("bytes", len(rendered)))

	return &Result{
		Body:       []byte(rendered),
		FinalURL:   finalURL,
		StatusCode: 200,
	}, nil
}
