package classify

import (
	"context"

	"github.com/fundscout/fundscout/internal/model"
)

// Classifier scores extracted page text. A nil Opportunity with a nil error
// means the page is not an opportunity; an error means the classification
// itself failed and the caller decides how to degrade. Any scoring strategy
// can be swapped in behind this contract without touching the pipeline.
type Classifier interface {
	// Name returns the classifier name
	Name() string

	// Classify scores the text and returns an opportunity or nil.
	Classify(ctx context.Context, text, sourceURL string) (*model.Opportunity, error)
}
