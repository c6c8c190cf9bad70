package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"
)

// Origin tags where a disclosure document came from.
type Origin string

const (
	OriginDirect Origin = "direct"
	OriginURL    Origin = "url"
	OriginFile   Origin = "file"
	OriginCSV    Origin = "csv"
)

// Document is a single disclosure text to be scored. Immutable once built.
type Document struct {
	Symbol    string
	Title     string
	Body      string
	Origin    Origin
	SourceURL string
}

// Fingerprint returns a stable identifier for deduplication.
func (d Document) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(d.Symbol))
	h.Write([]byte{0})
	h.Write([]byte(d.Title))
	h.Write([]byte{0})
	h.Write([]byte(d.Body))
	return hex.EncodeToString(h.Sum(nil))
}

// Provenance tells whether the active dictionary is hand-curated or generated.
type Provenance string

const (
	ProvenanceCurated   Provenance = "curated"
	ProvenanceGenerated Provenance = "generated"
	ProvenanceNone      Provenance = "none"
)

// Dictionary is an immutable term-to-score mapping with its provenance.
// Scores are in [0,10]; terms are unique, trimmed, non-empty.
type Dictionary struct {
	Terms      map[string]int
	Provenance Provenance
	SourcePath string
}

// Len returns the number of terms.
func (d Dictionary) Len() int { return len(d.Terms) }

// Score returns the base score for term, 0 when unknown.
func (d Dictionary) Score(term string) int { return d.Terms[term] }

// TermContribution pairs a matched term with its adjusted contribution.
type TermContribution struct {
	Term  string
	Score int
}

// ScoringResult is the outcome of scoring one document. Immutable.
type ScoringResult struct {
	Score         int
	Contributions map[string]int
	Document      Document
	Provenance    Provenance
}

// TopContributions returns up to n contributions ordered by descending
// adjusted score, ties broken lexicographically for determinism.
func (r ScoringResult) TopContributions(n int) []TermContribution {
	all := make([]TermContribution, 0, len(r.Contributions))
	for term, score := range r.Contributions {
		all = append(all, TermContribution{Term: term, Score: score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Term < all[j].Term
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// NotificationOutcome records whether a notification went out and why.
type NotificationOutcome struct {
	Notified  bool
	Reason    string
	Timestamp time.Time
}

// AuditRecord is one ledger row: a flattened scoring result plus the
// notification outcome. Never mutated after append.
type AuditRecord struct {
	Timestamp  time.Time
	Symbol     string
	Title      string
	Score      int
	Notified   bool
	Provenance Provenance
	Keywords   map[string]int
	Message    string
}
