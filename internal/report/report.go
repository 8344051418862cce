package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fundscout/fundscout/internal/model"
)

// Renderer writes the final ranked opportunities to their output artifacts.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderText writes the plain-text report: one block per opportunity with a
// title+score line and a source line.
func (r *Renderer) RenderText(opps []model.Opportunity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(FormatText(opps)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// FormatText renders the report body.
func FormatText(opps []model.Opportunity) string {
	var b strings.Builder
	for _, opp := range opps {
		fmt.Fprintf(&b, "- %s (%d/10)\n  Source: %s\n\n", opp.Title, opp.TrustScore, opp.SourceURL)
	}
	return b.String()
}

// RenderJSON writes the ranked opportunities as indented JSON.
func (r *Renderer) RenderJSON(opps []model.Opportunity, path string) error {
	data, err := json.MarshalIndent(opps, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a short human-readable summary.
func (r *Renderer) RenderSummary(w io.Writer, opps []model.Opportunity, threshold int) {
	if len(opps) == 0 {
		fmt.Fprintf(w, "No opportunities met the trust score threshold of %d.\n", threshold)
		return
	}

	fmt.Fprintf(w, "Found %d opportunities with trust score >= %d:\n\n", len(opps), threshold)
	fmt.Fprint(w, FormatText(opps))
}
