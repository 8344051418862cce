package classify

import (
	"fmt"
	"strings"

	"github.com/fundscout/fundscout/internal/model"
)

// New creates a classifier based on configuration.
func New(cfg model.ClassifyConfig) (Classifier, error) {
	switch strings.ToLower(cfg.Name) {
	case "keyword", "":
		return NewKeyword(cfg), nil

	case "openai":
		return NewOpenAI(cfg)

	default:
		return nil, fmt.Errorf("unknown classifier: %s (supported: keyword, openai)", cfg.Name)
	}
}
