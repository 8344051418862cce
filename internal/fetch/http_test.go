package fetch

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

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      2 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1000,
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>bonus offers</body></html>"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(testHTTPConfig(), zap.NewNop())

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotUA != "test-agent" {
		t.Errorf("expected configured user agent, got %q", gotUA)
	}
	if !strings.Contains(string(result.Body), "bonus offers") {
		t.Errorf("unexpected body: %q", result.Body)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: %d", result.StatusCode)
	}
}

func TestHTTPFetcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewHTTPFetcher(testHTTPConfig(), zap.NewNop())

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.Timeout = 30 * time.Millisecond
	f := NewHTTPFetcher(cfg, zap.NewNop())

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected timeout to surface as a fetch error")
	}
}

func TestHTTPFetcher_BodySizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer server.Close()

	f := NewHTTPFetcher(testHTTPConfig(), zap.NewNop())

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(result.Body) != 1000 {
		t.Errorf("expected body capped at 1000 bytes, got %d", len(result.Body))
	}
}

func TestNew_StrategySelection(t *testing.T) {
	logger := zap.NewNop()

	f, err := New(model.FetchConfig{Strategy: "lightweight"}, testHTTPConfig(), logger)
	if err != nil {
		t.Fatalf("lightweight: %v", err)
	}
	if _, ok := f.(*HTTPFetcher); !ok {
		t.Errorf("expected *HTTPFetcher, got %T", f)
	}

	f, err = New(model.FetchConfig{Strategy: "rendered"}, testHTTPConfig(), logger)
	if err != nil {
		t.Fatalf("rendered: %v", err)
	}
	if _, ok := f.(*BrowserFetcher); !ok {
		t.Errorf("expected *BrowserFetcher, got %T", f)
	}

	if _, err := New(model.FetchConfig{Strategy: "carrier-pigeon"}, testHTTPConfig(), logger); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
