package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// aiReply mirrors the JSON contract the prompt demands from the
// provider. Everything here is untrusted until validated.
type aiReply struct {
	CategoryID   string  `json:"category_id"`
	SegmentID    string  `json:"segment_id"`
	NicheID      string  `json:"niche_id"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
	Alternatives []struct {
		CategoryID string  `json:"category_id"`
		SegmentID  string  `json:"segment_id"`
		NicheID    string  `json:"niche_id"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	} `json:"alternatives"`
}

// parsedReply is the validated form of a provider response.
type parsedReply struct {
	path         taxonomy.Path
	confidence   float64
	reasoning    string
	alternatives []Candidate
}

// parseAIReply validates raw provider text against the taxonomy and
// returns a tagged outcome: a parsedReply, or an error naming the
// reason the reply was rejected. Callers treat any error as "the AI
// tier produced nothing usable" and degrade to fallback.
func parseAIReply(raw, lockedCategoryID string) (*parsedReply, error) {
	jsonText := extractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var r aiReply
	if err := json.Unmarshal([]byte(jsonText), &r); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	path, ok := taxonomy.ResolvePath(r.CategoryID, r.SegmentID, r.NicheID)
	if !ok {
		// Second chance: a valid segment with a hallucinated niche is
		// still usable at two levels.
		path, ok = taxonomy.ResolvePath(r.CategoryID, r.SegmentID, "")
		if !ok {
			return nil, fmt.Errorf("unknown taxonomy path %s/%s/%s", r.CategoryID, r.SegmentID, r.NicheID)
		}
	}
	if lockedCategoryID != "" && path.Category.ID != lockedCategoryID {
		return nil, fmt.Errorf("reply escaped locked category %s", lockedCategoryID)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v out of range", r.Confidence)
	}

	out := &parsedReply{
		path:       path,
		confidence: r.Confidence,
		reasoning:  strings.TrimSpace(r.Reasoning),
	}

	// Alternatives are best-effort: invalid entries are dropped, not
	// fatal.
	for _, alt := range r.Alternatives {
		p, ok := taxonomy.ResolvePath(alt.CategoryID, alt.SegmentID, alt.NicheID)
		if !ok {
			continue
		}
		if lockedCategoryID != "" && p.Category.ID != lockedCategoryID {
			continue
		}
		if alt.Confidence < 0 || alt.Confidence > 1 || strings.TrimSpace(alt.Reasoning) == "" {
			continue
		}
		out.alternatives = append(out.alternatives, Candidate{
			Path:       p,
			Confidence: alt.Confidence,
			Reasoning:  strings.TrimSpace(alt.Reasoning),
		})
	}
	return out, nil
}

// extractJSON pulls the first top-level JSON object out of raw text.
// Providers occasionally wrap the payload in prose or code fences
// despite instructions.
func extractJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
