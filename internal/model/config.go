package model

import "time"

// Config is the complete, immutable run configuration. It is built once in
// the CLI layer and passed into each component at construction.
type Config struct {
	Seeds       []string          `yaml:"seeds" mapstructure:"seeds"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Expand      ExpandConfig      `yaml:"expand" mapstructure:"expand"`
	Filter      FilterConfig      `yaml:"filter" mapstructure:"filter"`
	Failsafe    []string          `yaml:"failsafe" mapstructure:"failsafe"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Classify    ClassifyConfig    `yaml:"classify" mapstructure:"classify"`
	Rank        RankConfig        `yaml:"rank" mapstructure:"rank"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SearchConfig configures the search provider used for discovery.
type SearchConfig struct {
	// Provider name: "duckduckgo" or "serpapi".
	Provider string `yaml:"provider" mapstructure:"provider"`
	// BaseURL overrides the provider endpoint (used in tests).
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	// APIKey for API-backed providers. Never written to config files.
	APIKey string `yaml:"-" mapstructure:"-"`
	// MaxResults caps results collected per query.
	MaxResults int `yaml:"max_results" mapstructure:"max_results"`
	// DelayMin/DelayMax bound the randomized pause between consecutive
	// queries. Deliberate backpressure against provider throttling.
	DelayMin time.Duration `yaml:"delay_min" mapstructure:"delay_min"`
	DelayMax time.Duration `yaml:"delay_max" mapstructure:"delay_max"`
}

// ExpandConfig configures related-search query expansion.
type ExpandConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// SERPURL is the result-page template scraped for related terms.
	// Must contain a single %s for the encoded query.
	SERPURL string        `yaml:"serp_url" mapstructure:"serp_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// FilterConfig configures link validation.
type FilterConfig struct {
	Schemes []string `yaml:"schemes" mapstructure:"schemes"`
	// ExcludedDomains are matched as case-insensitive substrings of the
	// URL host. Loose on purpose: over-excluding known-noise domains is
	// preferred to letting them through.
	ExcludedDomains []string `yaml:"excluded_domains" mapstructure:"excluded_domains"`
}

// HTTPConfig configures outbound HTTP behavior shared by the fetcher,
// the search provider, and the expander.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	// RequestsPerSecond/Burst drive the per-domain rate limiter used
	// during fetch fan-out.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// FetchConfig selects the page acquisition strategy.
type FetchConfig struct {
	// Strategy is "lightweight" (plain HTTP GET) or "rendered"
	// (headless browser).
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
}

// ClassifyConfig configures the relevance classifier.
type ClassifyConfig struct {
	// Name selects the implementation: "keyword" or "openai".
	Name string `yaml:"name" mapstructure:"name"`
	// Keywords are high-confidence markers matched as case-insensitive
	// substrings of the extracted text.
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
	// MinSubstantialLen is the text length above which a page with no
	// keyword hit still yields a low-confidence opportunity.
	MinSubstantialLen int `yaml:"min_substantial_len" mapstructure:"min_substantial_len"`
	HighScore         int `yaml:"high_score" mapstructure:"high_score"`
	LowScore          int `yaml:"low_score" mapstructure:"low_score"`
	// Model and APIKey apply to the "openai" implementation only.
	Model  string `yaml:"model,omitempty" mapstructure:"model"`
	APIKey string `yaml:"-" mapstructure:"-"`
}

// RankConfig configures final filtering.
type RankConfig struct {
	// Threshold is the minimum trust score an opportunity must reach to
	// appear in the final report.
	Threshold int `yaml:"threshold" mapstructure:"threshold"`
}

// ConcurrencyConfig bounds the fan-out.
type ConcurrencyConfig struct {
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"`
}

// CacheConfig configures the per-run search-response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	JSONPath string `yaml:"json_path,omitempty" mapstructure:"json_path"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Seeds: []string{
			"credit card signup bonus offers",
			"high yield savings account bonus",
			"brokerage account opening bonus",
			"unclaimed government funds lookup",
			"small business grants application",
			"student scholarships and grants financial aid",
			"manufacturer rebates and coupons",
			"class action settlement claims",
		},
		Search: SearchConfig{
			Provider:   "duckduckgo",
			MaxResults: 10,
			DelayMin:   4 * time.Second,
			DelayMax:   8 * time.Second,
		},
		Expand: ExpandConfig{
			Enabled: true,
			SERPURL: "https://www.google.com/search?q=%s",
			Timeout: 10 * time.Second,
		},
		Filter: FilterConfig{
			Schemes: []string{"http", "https"},
			ExcludedDomains: []string{
				"google.com", "youtube.com", "facebook.com", "twitter.com",
				"linkedin.com", "instagram.com", "pinterest.com", "duckduckgo.com",
			},
		},
		Failsafe: []string{
			"https://www.nerdwallet.com/best/credit-cards/sign-up-bonus",
			"https://www.forbes.com/advisor/banking/best-bank-bonuses-and-promotions/",
			"https://www.unclaimed.org/",
			"https://grants.gov",
		},
		HTTP: HTTPConfig{
			Timeout:           20 * time.Second,
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Fetch: FetchConfig{
			Strategy: "lightweight",
		},
		Classify: ClassifyConfig{
			Name: "keyword",
			Keywords: []string{
				"bonus", "grant", "rebate", "scholarship",
				"claim", "settlement", "unclaimed",
			},
			MinSubstantialLen: 500,
			HighScore:         7,
			LowScore:          3,
			Model:             "gpt-4o-mini",
		},
		Rank: RankConfig{
			Threshold: 5,
		},
		Concurrency: ConcurrencyConfig{
			FetchWorkers: 8,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			Path: "financial_opportunities.txt",
		},
	}
}
