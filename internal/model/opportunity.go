package model

// Provenance records how a search query entered the working set.
type Provenance string

const (
	ProvenanceSeed    Provenance = "seed"    // human-authored query from configuration
	ProvenanceDerived Provenance = "derived" // discovered via related-search mining
)

// Query is an immutable search query in the working set.
type Query struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
}

// Opportunity is a scored financial opportunity produced by the classifier.
// TrustScore is an integer confidence in [0,10].
type Opportunity struct {
	Title      string `json:"title"`
	TrustScore int    `json:"trust_score"`
	SourceURL  string `json:"source_url"`
	Summary    string `json:"summary,omitempty"`
}
