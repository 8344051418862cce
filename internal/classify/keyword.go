package classify

import (
	"context"
	"strings"

	"github.com/fundscout/fundscout/internal/model"
)

// Keyword is the reference classifier: a tiered keyword matcher. A page
// containing any high-confidence keyword scores high; a keyword-free page
// with substantial text scores low; anything else is rejected. The tiering
// exists to exercise the pipeline end to end, not to be a serious relevance
// model.
type Keyword struct {
	keywords       []string
	minSubstantial int
	highScore      int
	lowScore       int
}

// NewKeyword creates a keyword classifier from configuration.
func NewKeyword(cfg model.ClassifyConfig) *Keyword {
	keywords := make([]string, 0, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}

	minSubstantial := cfg.MinSubstantialLen
	if minSubstantial <= 0 {
		minSubstantial = 500
	}

	highScore := cfg.HighScore
	if highScore == 0 {
		highScore = 7
	}
	lowScore := cfg.LowScore
	if lowScore == 0 {
		lowScore = 3
	}

	return &Keyword{
		keywords:       keywords,
		minSubstantial: minSubstantial,
		highScore:      highScore,
		lowScore:       lowScore,
	}
}

// Name returns the classifier name
func (k *Keyword) Name() string {
	return "keyword"
}

// Classify applies the tiered policy. It never returns an error.
func (k *Keyword) Classify(_ context.Context, text, sourceURL string) (*model.Opportunity, error) {
	lower := strings.ToLower(text)

	for _, keyword := range k.keywords {
		if strings.Contains(lower, keyword) {
			return &model.Opportunity{
				Title:      "Potential Financial Opportunity Found",
				TrustScore: k.highScore,
				SourceURL:  sourceURL,
				Summary:    "This page appears to contain information about a financial bonus, grant, or similar opportunity.",
			}, nil
		}
	}

	if len(text) > k.minSubstantial {
		return &model.Opportunity{
			Title:      "Low-Confidence Opportunity",
			TrustScore: k.lowScore,
			SourceURL:  sourceURL,
			Summary:    "Page has substantial content but no specific financial keywords were detected.",
		}, nil
	}

	return nil, nil
}
