// Package classify implements the tiered industry classification
// pipeline: cache → seed dictionary → ontology rules → ambiguity
// candidates → AI fallback. It is deterministic except for the AI
// tier, does no logging of its own, and is safe for concurrent use;
// the only shared state is the injected cache.Store.
package classify

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// Source identifies which tier produced a classification.
type Source string

const (
	SourceSeed     Source = "seed"
	SourceOntology Source = "ontology"
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// DefaultDecisiveThreshold is the confidence at or above which a
// result is returned as the sole answer with no candidate list.
// Exposed as configuration pending product calibration.
const DefaultDecisiveThreshold = 0.80

// Request is one classification input. Description is the verbatim
// user text; the remaining fields are optional context that narrows
// (and fingerprints) the classification.
type Request struct {
	Description string `json:"description"`
	// OccupationID pins the request to a previously selected
	// occupation entry, when the client has one.
	OccupationID string `json:"occupation_id,omitempty"`
	// LockedCategoryID constrains results to a category the user has
	// already chosen.
	LockedCategoryID string `json:"locked_category_id,omitempty"`
	// Source tags the calling surface (e.g. "onboarding"). It is part
	// of the cache fingerprint, not a matching input.
	Source string `json:"source,omitempty"`
}

// Candidate is one plausible classification offered when the input is
// ambiguous. Candidates are presentation-only: they are returned for
// the user to disambiguate and never persisted or cached.
type Candidate struct {
	taxonomy.Path
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	// OccupationName is a canonical display name for the occupation
	// this candidate assumes, when one is known.
	OccupationName string `json:"occupation_name,omitempty"`
}

// Result is the pipeline's answer. Category and Segment are always
// populated; the pipeline degrades to the generic fallback bucket
// rather than returning an empty path. Confidence is in [0,1].
type Result struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	taxonomy.Path
	Confidence float64     `json:"confidence"`
	Source     Source      `json:"source"`
	Reasoning  string      `json:"reasoning,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
	// Cached marks a result served from the cache; Source keeps the
	// tier that originally computed it.
	Cached           bool  `json:"cached,omitempty"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// Decisive reports whether the result is confident enough to stand
// alone, per the given threshold.
func (r *Result) Decisive(threshold float64) bool {
	return len(r.Candidates) == 0 && r.Confidence >= threshold
}

// Normalize canonicalizes free text for matching: width folding
// (full-width → half-width), lower-casing, and whitespace collapsing.
// CJK text passes through unchanged apart from width folding.
func Normalize(s string) string {
	s = width.Narrow.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
