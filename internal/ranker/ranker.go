// Package ranker derives a scored term dictionary from a corpus of
// disclosure texts via corpus-relative term importance.
package ranker

import (
	"log/slog"
	"math"
	"sort"
	"unicode/utf8"

	"IRNotifier/internal/domain"
	"IRNotifier/internal/ports"
)

const (
	defaultMaxKeywords = 200
	minTermRunes       = 2
	scoreScale         = 20
	minMappedScore     = 1
	maxMappedScore     = 10
)

// Ranker turns raw corpus texts into a bounded scored dictionary.
type Ranker struct {
	extractor   ports.TermExtractor
	maxKeywords int
	logger      *slog.Logger
}

// NewRanker wires the morphological term extractor. maxKeywords <= 0 means
// the default of 200.
func NewRanker(extractor ports.TermExtractor, maxKeywords int, logger *slog.Logger) *Ranker {
	if maxKeywords <= 0 {
		maxKeywords = defaultMaxKeywords
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{extractor: extractor, maxKeywords: maxKeywords, logger: logger}
}

// BuildDictionary tokenizes every corpus text, ranks surviving terms by mean
// TF-IDF weight, keeps the top maxKeywords, and maps weights to integer
// scores in [1,10] with domain floors applied. A failed or empty corpus item
// is skipped, not fatal; the ranker fails only when nothing survives.
func (r *Ranker) BuildDictionary(texts []string) (map[string]int, error) {
	docs := make([][]string, 0, len(texts))
	for i, text := range texts {
		terms, err := r.extractor.Extract(text)
		if err != nil {
			r.logger.Warn("corpus item skipped", "index", i, "error", err)
			continue
		}
		if len(terms) == 0 {
			continue
		}
		docs = append(docs, terms)
	}

	if len(docs) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	weights := corpusWeights(docs)
	if len(weights) == 0 {
		return nil, domain.ErrNoSurvivingTerms
	}

	ranked := rankByWeight(weights)
	if len(ranked) > r.maxKeywords {
		ranked = ranked[:r.maxKeywords]
	}

	dict := make(map[string]int, len(ranked))
	for _, tw := range ranked {
		// Recheck after mapping; the extractor already filters short
		// terms but the dictionary invariant must hold regardless.
		if utf8.RuneCountInString(tw.term) < minTermRunes {
			continue
		}

		score := clampScore(int(math.Round(tw.weight * scoreScale)))
		dict[tw.term] = applyFloor(tw.term, score)
	}

	if len(dict) == 0 {
		return nil, domain.ErrNoSurvivingTerms
	}

	r.logger.Info("dictionary generated", "terms", len(dict), "corpus", len(docs))
	return dict, nil
}

type termWeight struct {
	term   string
	weight float64
}

func rankByWeight(weights map[string]float64) []termWeight {
	ranked := make([]termWeight, 0, len(weights))
	for term, weight := range weights {
		ranked = append(ranked, termWeight{term: term, weight: weight})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].term < ranked[j].term
	})
	return ranked
}

func clampScore(score int) int {
	if score < minMappedScore {
		return minMappedScore
	}
	if score > maxMappedScore {
		return maxMappedScore
	}
	return score
}
