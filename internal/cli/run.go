package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/cache"
	"github.com/fundscout/fundscout/internal/classify"
	"github.com/fundscout/fundscout/internal/discover"
	"github.com/fundscout/fundscout/internal/expand"
	"github.com/fundscout/fundscout/internal/extract"
	"github.com/fundscout/fundscout/internal/fetch"
	"github.com/fundscout/fundscout/internal/model"
	"github.com/fundscout/fundscout/internal/pipeline"
	"github.com/fundscout/fundscout/internal/report"
	"github.com/fundscout/fundscout/internal/search"
	"github.com/fundscout/fundscout/internal/worker"
)

var (
	outPath        string
	outJSON        string
	runTimeout     time.Duration
	fetchWorkers   int
	threshold      int
	fetchStrategy  string
	searchProvider string
	classifierName string
	seeds          []string
	maxResults     int
	userAgent      string
	httpProxy      string
	httpsProxy     string
	noExpand       bool
	noCache        bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full discovery pass and write the ranked report",
	Long: `Run executes the complete discovery pipeline:
- Expand seed queries with related-search terms
- Discover candidate URLs through the search provider
- Fetch and extract pages concurrently
- Score relevance and rank by trust score
- Write the plain-text report

Example:
  fundscout run
  fundscout run --out report.txt --threshold 6 --workers 16
  fundscout run --seeds "small business grants" --no-expand
  fundscout run --provider serpapi --classifier openai --strategy rendered`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVar(&outPath, "out", "financial_opportunities.txt", "output report path")
	runCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")

	// Pipeline flags
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall run timeout")
	runCmd.Flags().IntVar(&fetchWorkers, "workers", 8, "number of concurrent fetch workers")
	runCmd.Flags().IntVar(&threshold, "threshold", 5, "minimum trust score for the report")
	runCmd.Flags().StringSliceVar(&seeds, "seeds", nil, "override the built-in seed queries")
	runCmd.Flags().IntVar(&maxResults, "max-results", 10, "max results collected per query")
	runCmd.Flags().BoolVar(&noExpand, "no-expand", false, "disable related-search query expansion")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the search response cache")

	// Strategy flags
	runCmd.Flags().StringVar(&fetchStrategy, "strategy", "lightweight", "fetch strategy (lightweight, rendered)")
	runCmd.Flags().StringVar(&searchProvider, "provider", "duckduckgo", "search provider (duckduckgo, serpapi)")
	runCmd.Flags().StringVar(&classifierName, "classifier", "keyword", "relevance classifier (keyword, openai)")

	// HTTP flags
	runCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	runCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	runCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Seeds: %d\n", len(cfg.Seeds))
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.Search.Provider)
		fmt.Fprintf(os.Stderr, "Classifier: %s\n", cfg.Classify.Name)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.FetchWorkers)
		fmt.Fprintln(os.Stderr)
	}

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	ranked, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	renderer := report.NewRenderer()
	if err := renderer.RenderText(ranked, cfg.Output.Path); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if cfg.Output.JSONPath != "" {
		if err := renderer.RenderJSON(ranked, cfg.Output.JSONPath); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	renderer.RenderSummary(os.Stdout, ranked, cfg.Rank.Threshold)
	fmt.Printf("Report written to %s\n", cfg.Output.Path)

	return nil
}

// buildConfig layers the run configuration: defaults, then config file and
// environment via viper, then flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if len(seeds) > 0 {
		cfg.Seeds = seeds
	}
	cfg.Search.Provider = searchProvider
	cfg.Search.MaxResults = maxResults
	cfg.Fetch.Strategy = fetchStrategy
	cfg.Classify.Name = classifierName
	cfg.Rank.Threshold = threshold
	cfg.Concurrency.FetchWorkers = fetchWorkers
	cfg.Expand.Enabled = !noExpand
	cfg.Cache.Enabled = !noCache
	cfg.Output.Path = outPath
	cfg.Output.JSONPath = outJSON
	cfg.Output.Verbose = verbose
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy

	// API keys come from the environment only
	cfg.Search.APIKey = os.Getenv("SERPAPI_API_KEY")
	cfg.Classify.APIKey = os.Getenv("OPENAI_API_KEY")

	if len(cfg.Seeds) == 0 {
		return nil, fmt.Errorf("no seed queries configured")
	}

	return cfg, nil
}

// buildLogger creates the structured logger. Verbose runs get the
// development config with debug output; normal runs log warnings and
// errors only.
func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zapCfg.Build()
}

// buildPipeline is the composition root: it wires every component from
// configuration and returns the assembled pipeline.
func buildPipeline(cfg *model.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	provider, err := search.New(cfg.Search, cfg.HTTP, logger)
	if err != nil {
		return nil, fmt.Errorf("build search provider: %w", err)
	}
	if cfg.Cache.Enabled {
		store := cache.NewMemoryCache(cfg.Cache.TTL)
		provider = search.NewCached(provider, store, cfg.Cache.TTL, logger)
	}

	filter := discover.NewLinkFilter(cfg.Filter)
	pacer := worker.NewPacer(cfg.Search.DelayMin, cfg.Search.DelayMax)
	discoverer := discover.NewDiscoverer(provider, filter, pacer, cfg.Search, cfg.Failsafe, logger)

	var expander pipeline.QueryExpander
	if cfg.Expand.Enabled {
		expander = expand.New(cfg.Expand, cfg.HTTP, logger)
	}

	fetcher, err := fetch.New(cfg.Fetch, cfg.HTTP, logger)
	if err != nil {
		return nil, fmt.Errorf("build fetcher: %w", err)
	}

	classifier, err := classify.New(cfg.Classify)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	extractor := extract.NewHTMLExtractor(logger)

	return pipeline.New(cfg, expander, discoverer, fetcher, extractor, classifier, logger), nil
}
