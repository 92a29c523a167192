// Package cache provides the TTL result cache used by the
// classification pipeline. Keys are canonical fingerprints of the
// classification input; values are opaque byte payloads (the pipeline
// stores JSON-encoded results).
//
// The cache is an optimization only. Implementations must never let a
// backend failure escape to the caller: a failed read is a miss, a
// failed write is a no-op. Entries are replaced or expired, never
// updated in place.
//
// Like the rest of the low-level packages, this one does no logging;
// callers decide how and what to log.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// DefaultTTL is how long a cached classification stays valid.
const DefaultTTL = time.Hour

// Stats is a snapshot of cache effectiveness counters.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Store is the minimal contract the classification pipeline needs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the payload for key, or ok=false on miss, expiry,
	// or any backend failure.
	Get(key string) (payload []byte, ok bool)
	// Set stores payload under key with the store's TTL, overwriting
	// any existing entry. Failures are swallowed.
	Set(key string, payload []byte)
	// Stats returns hit/miss counters and the current entry count.
	Stats() Stats
	// Clear removes all entries. Test and operational support only.
	Clear()
}

// Key builds the canonical cache fingerprint for a classification
// input. Identical semantic input always yields the identical key:
// the description is trimmed, width-folded (full-width → half-width)
// and lowercased, and the context fields are serialized in a fixed
// order so map/struct field ordering can never leak into the key.
func Key(description, occupationID, lockedCategoryID, source string) string {
	d := canonicalText(description)

	var b strings.Builder
	b.Grow(len(d) + 48)
	b.WriteString("d=")
	b.WriteString(d)
	b.WriteString("|occ=")
	b.WriteString(strings.TrimSpace(occupationID))
	b.WriteString("|lock=")
	b.WriteString(strings.TrimSpace(lockedCategoryID))
	b.WriteString("|src=")
	b.WriteString(strings.TrimSpace(source))

	sum := sha256.Sum256([]byte(b.String()))
	return "classify:" + hex.EncodeToString(sum[:16])
}

// canonicalText normalizes free text for fingerprinting: surrounding
// whitespace, letter case and character width are not distinguishing.
func canonicalText(s string) string {
	s = width.Narrow.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
