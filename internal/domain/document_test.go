package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	a := Document{Symbol: "7203", Title: "決算", Body: "本文"}
	b := Document{Symbol: "7203", Title: "決算", Body: "本文"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	// Field boundaries matter: shifting text between fields changes the hash.
	c := Document{Symbol: "7203決", Title: "算", Body: "本文"}
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := Document{Symbol: "7203", Title: "決算", Body: "別の本文"}
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestDictionaryScore(t *testing.T) {
	dict := Dictionary{Terms: map[string]int{"赤字": 8}}

	assert.Equal(t, 8, dict.Score("赤字"))
	assert.Equal(t, 0, dict.Score("黒字"))
	assert.Equal(t, 1, dict.Len())
}

func TestTopContributions(t *testing.T) {
	result := ScoringResult{
		Contributions: map[string]int{
			"減損": 8, "赤字": 10, "訴訟": 8, "下方修正": 6,
		},
	}

	top := result.TopContributions(3)

	// Descending by score; equal scores ordered lexicographically.
	assert.Equal(t, []TermContribution{
		{Term: "赤字", Score: 10},
		{Term: "減損", Score: 8},
		{Term: "訴訟", Score: 8},
	}, top)
}

func TestTopContributionsAll(t *testing.T) {
	result := ScoringResult{Contributions: map[string]int{"a": 1, "b": 2}}

	assert.Len(t, result.TopContributions(0), 2)
	assert.Len(t, result.TopContributions(10), 2)
}
