package expand

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/model"
)

// relatedSelector targets the "related searches" / "people also search for"
// anchors on the result page.
const relatedSelector = `div[data-st-mc] a, a[id^='rl_']`

// maxTermLen discards scraped strings that are too long to be a plausible
// search query.
const maxTermLen = 100

// Expander grows the seed query set by mining related-search terms from a
// search engine result page. One failed seed contributes zero terms and
// never aborts the overall expansion.
type Expander struct {
	httpClient *http.Client
	serpURL    string
	userAgent  string
	logger     *zap.Logger
}

// New creates an expander. serpURL must contain a single %s placeholder for
// the encoded query.
func New(cfg model.ExpandConfig, httpCfg model.HTTPConfig, logger *zap.Logger) *Expander {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = httpCfg.Timeout
	}

	return &Expander{
		httpClient: &http.Client{Timeout: timeout},
		serpURL:    cfg.SERPURL,
		userAgent:  httpCfg.UserAgent,
		logger:     logger,
	}
}

// Expand mines related terms for every seed concurrently and returns the
// union of seeds and valid discovered terms. The output always contains
// every seed. Seeds keep their input order; derived terms follow sorted
// alphabetically so the result is deterministic for a given discovery set.
func (e *Expander) Expand(ctx context.Context, seeds []string) []model.Query {
	working := newQuerySet(seeds)

	var wg sync.WaitGroup
	for _, seed := range seeds {
		wg.Add(1)
		go func(seed string) {
			defer wg.Done()

			terms, err := e.relatedTerms(ctx, seed)
			if err != nil {
				e.logger.Warn("query expansion failed for seed",
					zap.String("seed", seed),
					zap.Error(err))
				return
			}

			added := working.addAll(terms)
			e.logger.Debug("expanded seed",
				zap.String("seed", seed),
				zap.Int("new_terms", added))
		}(seed)
	}
	wg.Wait()

	result := working.queries()
	e.logger.Info("query expansion complete",
		zap.Int("seeds", len(seeds)),
		zap.Int("total", len(result)))

	return result
}

// relatedTerms scrapes the result page for one seed.
func (e *Expander) relatedTerms(ctx context.Context, seed string) ([]string, error) {
	searchURL := fmt.Sprintf(e.serpURL, url.QueryEscape(seed))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch result page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse result page: %w", err)
	}

	var terms []string
	doc.Find(relatedSelector).Each(func(_ int, sel *goquery.Selection) {
		terms = append(terms, strings.TrimSpace(sel.Text()))
	})

	return terms, nil
}

// junkTerm reports whether a scraped string is navigation noise rather than
// a usable search query.
func junkTerm(term string) bool {
	if len(term) <= 3 || len(term) > maxTermLen {
		return true
	}

	lower := strings.ToLower(term)
	if strings.Contains(lower, "see more") || strings.Contains(lower, "search") {
		return true
	}

	// Breadcrumb separators leak in from navigation markup.
	if strings.ContainsAny(term, "›»") {
		return true
	}

	return false
}

// querySet is the shared working set during expansion. Union is commutative,
// so concurrent adders only need mutual exclusion, not ordering.
type querySet struct {
	mu      sync.Mutex
	seen    map[string]bool
	seeds   []string
	derived []string
}

func newQuerySet(seeds []string) *querySet {
	s := &querySet{seen: make(map[string]bool)}
	for _, seed := range seeds {
		key := strings.ToLower(strings.TrimSpace(seed))
		if key == "" || s.seen[key] {
			continue
		}
		s.seen[key] = true
		s.seeds = append(s.seeds, strings.TrimSpace(seed))
	}
	return s
}

// addAll merges valid terms into the set and returns how many were new.
func (s *querySet) addAll(terms []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" || junkTerm(term) {
			continue
		}
		key := strings.ToLower(term)
		if s.seen[key] {
			continue
		}
		s.seen[key] = true
		s.derived = append(s.derived, term)
		added++
	}
	return added
}

func (s *querySet) queries() []model.Query {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.Strings(s.derived)

	result := make([]model.Query, 0, len(s.seeds)+len(s.derived))
	for _, seed := range s.seeds {
		result = append(result, model.Query{Text: seed, Provenance: model.ProvenanceSeed})
	}
	for _, term := range s.derived {
		result = append(result, model.Query{Text: term, Provenance: model.ProvenanceDerived})
	}
	return result
}
