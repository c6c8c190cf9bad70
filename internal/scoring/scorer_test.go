package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IRNotifier/internal/domain"
)

func TestScoreEmptyDictionary(t *testing.T) {
	s := NewScorer(nil)

	result := s.Score(domain.Document{Title: "t", Body: "赤字"}, domain.Dictionary{})

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Contributions)
	assert.Equal(t, domain.ProvenanceNone, result.Provenance)
}

func TestScoreEmptyBody(t *testing.T) {
	s := NewScorer(nil)
	dict := domain.Dictionary{
		Terms:      map[string]int{"赤字": 8},
		Provenance: domain.ProvenanceCurated,
	}

	result := s.Score(domain.Document{Title: "t"}, dict)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Contributions)
	assert.Equal(t, domain.ProvenanceNone, result.Provenance)
}

func TestScoreFrequencyAndLength(t *testing.T) {
	s := NewScorer(nil)
	dict := domain.Dictionary{
		Terms:      map[string]int{"赤字": 8, "減損": 8},
		Provenance: domain.ProvenanceCurated,
	}

	// Short body: length factor stays 1.0. 赤字 twice gives a 1.2x
	// frequency bonus (9.6 rounds to 10), 減損 once stays at 8.
	doc := domain.Document{
		Title: "業績修正",
		Body:  "本日、赤字。通期も 赤字、さらに【減損】を計上。",
	}

	result := s.Score(doc, dict)

	require.Equal(t, map[string]int{"赤字": 10, "減損": 8}, result.Contributions)
	assert.Equal(t, 18, result.Score)
	assert.Equal(t, domain.ProvenanceCurated, result.Provenance)
}

func TestScoreLengthDilution(t *testing.T) {
	s := NewScorer(nil)
	dict := domain.Dictionary{
		Terms:      map[string]int{"loss": 10},
		Provenance: domain.ProvenanceGenerated,
	}

	// 2000 runes halves every contribution.
	filler := strings.Repeat("。", 1995)
	doc := domain.Document{Body: "loss" + filler + "。"}

	result := s.Score(doc, dict)

	assert.Equal(t, 5, result.Score)
	assert.Equal(t, map[string]int{"loss": 5}, result.Contributions)
}

func TestScoreClampsAt100(t *testing.T) {
	s := NewScorer(nil)

	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo",
	}
	terms := make(map[string]int, len(words))
	for _, w := range words {
		terms[w] = 10
	}

	result := s.Score(
		domain.Document{Body: strings.Join(words, " ")},
		domain.Dictionary{Terms: terms, Provenance: domain.ProvenanceCurated},
	)

	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Contributions, len(words))
}

func TestScoreSkipsNonPositiveBases(t *testing.T) {
	s := NewScorer(nil)
	dict := domain.Dictionary{
		Terms:      map[string]int{"noise": 0, "junk": -3},
		Provenance: domain.ProvenanceCurated,
	}

	result := s.Score(domain.Document{Body: "noise junk"}, dict)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Contributions)
}

func TestFrequencyFactor(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{count: 1, want: 1.0},
		{count: 2, want: 1.2},
		{count: 3, want: 1.4},
		{count: 6, want: 2.0},
		{count: 11, want: 2.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, frequencyFactor(tt.count), 1e-9, "count %d", tt.count)
	}
}

func TestLengthFactor(t *testing.T) {
	tests := []struct {
		runes int
		want  float64
	}{
		{runes: 100, want: 1.0},
		{runes: 500, want: 1.0},
		{runes: 1000, want: 1.0},
		{runes: 2000, want: 0.5},
		{runes: 4000, want: 0.25},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, lengthFactorFor(tt.runes), 1e-9, "runes %d", tt.runes)
	}
}
