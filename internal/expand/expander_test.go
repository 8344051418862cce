package expand

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fundscout/fundscout/internal/model"
)

const serpPage = `<!DOCTYPE html>
<html><body>
<div data-st-mc="1">
  <a href="#">best bank account bonuses no deposit</a>
  <a href="#">new member credit union promotions</a>
  <a href="#">See more results</a>
  <a href="#">abc</a>
  <a href="#">Home › Banking › Bonuses</a>
</div>
<a id="rl_1" href="#">unclaimed property lookup by state</a>
</body></html>`

func newTestExpander(serverURL string) *Expander {
	return New(
		model.ExpandConfig{
			Enabled: true,
			SERPURL: serverURL + "?q=%s",
			Timeout: 5 * time.Second,
		},
		model.HTTPConfig{UserAgent: "test-agent", Timeout: 5 * time.Second},
		zap.NewNop(),
	)
}

func TestExpand_DiscoversRelatedTerms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(serpPage))
	}))
	defer server.Close()

	expander := newTestExpander(server.URL)

	seeds := []string{"bank bonus offers"}
	result := expander.Expand(context.Background(), seeds)

	texts := make(map[string]model.Provenance, len(result))
	for _, q := range result {
		texts[q.Text] = q.Provenance
	}

	for _, want := range []string{
		"best bank account bonuses no deposit",
		"new member credit union promotions",
		"unclaimed property lookup by state",
	} {
		if texts[want] != model.ProvenanceDerived {
			t.Errorf("expected derived query %q in result", want)
		}
	}

	for _, junk := range []string{"See more results", "abc", "Home › Banking › Bonuses"} {
		if _, found := texts[junk]; found {
			t.Errorf("junk term %q survived filtering", junk)
		}
	}
}

func TestExpand_OutputSupersetOfSeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(serpPage))
	}))
	defer server.Close()

	expander := newTestExpander(server.URL)

	seeds := []string{"bank bonus offers", "small business grants"}
	result := expander.Expand(context.Background(), seeds)

	for i, seed := range seeds {
		if result[i].Text != seed || result[i].Provenance != model.ProvenanceSeed {
			t.Errorf("seed %q missing or out of order in output", seed)
		}
	}
	if len(result) < len(seeds) {
		t.Errorf("output smaller than seed set: %d < %d", len(result), len(seeds))
	}
}

func TestExpand_FailedSeedContributesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	expander := newTestExpander(server.URL)

	seeds := []string{"bank bonus offers"}
	result := expander.Expand(context.Background(), seeds)

	if len(result) != 1 || result[0].Text != seeds[0] {
		t.Errorf("expected exactly the seed set on total failure, got %+v", result)
	}
}

func TestExpand_DeduplicatesCaseInsensitive(t *testing.T) {
	page := `<html><body><div data-st-mc="1">
		<a href="#">Bank Bonus Offers</a>
		<a href="#">unclaimed property lookup</a>
		<a href="#">UNCLAIMED PROPERTY LOOKUP</a>
	</div></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	expander := newTestExpander(server.URL)

	result := expander.Expand(context.Background(), []string{"bank bonus offers"})

	// The seed already covers "Bank Bonus Offers" and the two lookup
	// variants collapse to one.
	if len(result) != 2 {
		t.Fatalf("expected 2 queries after case-insensitive dedup, got %d: %+v", len(result), result)
	}
}

func TestJunkTerm(t *testing.T) {
	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"abc", true},
		{"see more results", true},
		{"Search instead for grants", true},
		{"Home › Banking", true},
		{"Results » Page 2", true},
		{strings.Repeat("x", 101), true},
		{"best bank account bonuses", false},
		{"manufacturer rebate programs", false},
	}

	for _, tt := range tests {
		if got := junkTerm(tt.term); got != tt.want {
			t.Errorf("junkTerm(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}
