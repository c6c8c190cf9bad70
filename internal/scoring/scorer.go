// Package scoring matches dictionary terms against one document and produces
// a bounded, explainable impact score.
package scoring

import (
	"log/slog"
	"math"
	"unicode/utf8"

	"IRNotifier/internal/domain"
)

const (
	minTotalScore = 0
	maxTotalScore = 100

	// Frequency bonus: +0.2 per repeat occurrence, capped at 2x.
	frequencyStep = 0.2
	frequencyCap  = 2.0

	// Length dilution: documents at or under floorLength runes score at
	// full strength; beyond that each term contribution is diluted.
	referenceLength = 1000.0
	floorLength     = 500
)

// Scorer computes impact scores. Stateless; safe for concurrent use.
type Scorer struct {
	logger *slog.Logger
}

// NewScorer builds a scorer. Logger may be nil.
func NewScorer(logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{logger: logger}
}

// Score applies the dictionary to one document. The dictionary snapshot is
// passed explicitly so concurrent scoring never races a reload.
func (s *Scorer) Score(doc domain.Document, dict domain.Dictionary) domain.ScoringResult {
	if dict.Len() == 0 {
		return domain.ScoringResult{
			Score:         0,
			Contributions: map[string]int{},
			Document:      doc,
			Provenance:    domain.ProvenanceNone,
		}
	}

	if doc.Body == "" {
		s.logger.Warn("empty document body", "title", doc.Title)
		return domain.ScoringResult{
			Score:         0,
			Contributions: map[string]int{},
			Document:      doc,
			Provenance:    domain.ProvenanceNone,
		}
	}

	docLength := utf8.RuneCountInString(doc.Body)
	lengthFactor := lengthFactorFor(docLength)

	contributions := make(map[string]int)
	total := 0

	for term, base := range dict.Terms {
		if base <= 0 {
			continue
		}
		count := countBoundaryMatches(doc.Body, term)
		if count == 0 {
			continue
		}

		adjusted := adjustScore(base, count, lengthFactor)
		contributions[term] = adjusted
		total += adjusted
	}

	// Per-term contributions stay unclamped; only the sum is bounded.
	final := total
	if final > maxTotalScore {
		final = maxTotalScore
	}
	if final < minTotalScore {
		final = minTotalScore
	}

	s.logger.Info("document scored", "title", doc.Title, "score", final, "terms", len(contributions))

	return domain.ScoringResult{
		Score:         final,
		Contributions: contributions,
		Document:      doc,
		Provenance:    dict.Provenance,
	}
}

func adjustScore(base, count int, lengthFactor float64) int {
	freq := frequencyFactor(count)
	return int(math.Round(float64(base) * freq * lengthFactor))
}

func frequencyFactor(count int) float64 {
	factor := 1.0 + float64(count-1)*frequencyStep
	if factor > frequencyCap {
		return frequencyCap
	}
	return factor
}

func lengthFactorFor(runes int) float64 {
	if runes < floorLength {
		runes = floorLength
	}
	factor := referenceLength / float64(runes)
	if factor > 1.0 {
		return 1.0
	}
	return factor
}
