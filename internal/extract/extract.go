package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
)

// Extractor reduces raw page content to clean main-body text. An empty
// string with a nil error means the page had no extractable content; both
// outcomes are recoverable for the caller.
type Extractor interface {
	Text(body []byte, pageURL string) (string, error)
}

// HTMLExtractor extracts with trafilatura and falls back to readability
// when trafilatura finds nothing. Boilerplate, comments, and tabular markup
// are discarded.
type HTMLExtractor struct {
	logger *zap.Logger
}

// NewHTMLExtractor creates a new HTMLExtractor.
func NewHTMLExtractor(logger *zap.Logger) *HTMLExtractor {
	return &HTMLExtractor{logger: logger}
}

// Text returns the clean main-body text of the page.
func (e *HTMLExtractor) Text(body []byte, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	opts := trafilatura.Options{
		OriginalURL:     parsedURL,
		ExcludeComments: true,
		ExcludeTables:   true,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err == nil && result != nil {
		if text := strings.TrimSpace(result.ContentText); text != "" {
			return text, nil
		}
	}
	if err != nil {
		e.logger.Debug("trafilatura extraction failed, trying readability",
			zap.String("url", pageURL),
			zap.Error(err))
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	return strings.TrimSpace(article.TextContent), nil
}
