package ranker

import "math"

const (
	minDocFreq  = 2    // term must occur in at least this many documents
	maxDocShare = 0.85 // terms in more than this share of documents are noise
)

// corpusWeights computes the mean TF-IDF weight of every surviving term
// across the corpus. TF is normalized by document token count, IDF is
// smoothed (ln((1+N)/(1+df))+1), and each document vector is L2-normalized
// before averaging over all documents.
func corpusWeights(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64)
	for term, count := range df {
		if count < minDocFreq {
			continue
		}
		if float64(count) > maxDocShare*n {
			continue
		}
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	if len(idf) == 0 {
		return nil
	}

	sums := make(map[string]float64, len(idf))
	for _, doc := range docs {
		tf := make(map[string]int)
		for _, term := range doc {
			if _, ok := idf[term]; ok {
				tf[term]++
			}
		}
		if len(tf) == 0 {
			continue
		}

		docLen := float64(len(doc))
		weights := make(map[string]float64, len(tf))
		var norm float64
		for term, count := range tf {
			w := (float64(count) / docLen) * idf[term]
			weights[term] = w
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for term, w := range weights {
			sums[term] += w / norm
		}
	}

	means := make(map[string]float64, len(sums))
	for term, sum := range sums {
		means[term] = sum / n
	}
	return means
}
