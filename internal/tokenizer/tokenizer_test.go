package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New()
	require.NoError(t, err)
	return tok
}

func TestExtractKeepsContentWords(t *testing.T) {
	tok := newTokenizer(t)

	terms, err := tok.Extract("当社は通期で赤字を計上しました。")
	require.NoError(t, err)

	assert.Contains(t, terms, "赤字")
	assert.Contains(t, terms, "計上")
	// Corporate boilerplate and auxiliaries are filtered.
	assert.NotContains(t, terms, "当社")
	assert.NotContains(t, terms, "する")
	assert.NotContains(t, terms, "は")
}

func TestExtractUsesBaseForms(t *testing.T) {
	tok := newTokenizer(t)

	terms, err := tok.Extract("売上が大きく伸びた。")
	require.NoError(t, err)

	// Inflected verbs come back in dictionary form.
	assert.Contains(t, terms, "伸びる")
	assert.NotContains(t, terms, "伸び")
}

func TestExtractDropsShortTerms(t *testing.T) {
	tok := newTokenizer(t)

	terms, err := tok.Extract("木を植えた。")
	require.NoError(t, err)

	assert.NotContains(t, terms, "木")
}

func TestExtractEmptyText(t *testing.T) {
	tok := newTokenizer(t)

	terms, err := tok.Extract("")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestIsStopTerm(t *testing.T) {
	assert.True(t, isStopTerm("する"))
	assert.True(t, isStopTerm("お知らせ"))
	assert.True(t, isStopTerm("株式会社"))
	assert.False(t, isStopTerm("赤字"))
}
