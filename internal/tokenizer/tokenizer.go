package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"

	"IRNotifier/internal/ports"
)

const minTermRunes = 2

// Tokenizer segments Japanese text into normalized candidate terms using
// morphological analysis. Only nouns, verbs, and adjectives survive, reduced
// to their base form, with short terms and domain stop-terms dropped.
type Tokenizer struct {
	analyzer *kagome.Tokenizer
}

var _ ports.TermExtractor = (*Tokenizer)(nil)

// New builds a tokenizer backed by the IPA dictionary.
func New() (*Tokenizer, error) {
	analyzer, err := kagome.New(ipa.Dict(), kagome.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init morphological analyzer: %w", err)
	}
	return &Tokenizer{analyzer: analyzer}, nil
}

// Extract returns the filtered base-form terms of text, in document order.
func (t *Tokenizer) Extract(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	var terms []string
	for _, token := range t.analyzer.Tokenize(text) {
		features := token.Features()
		if len(features) == 0 {
			continue
		}

		pos := features[0]
		if pos != "名詞" && pos != "動詞" && pos != "形容詞" {
			continue
		}

		base, ok := token.BaseForm()
		if !ok || base == "" {
			base = token.Surface
		}

		if utf8.RuneCountInString(base) < minTermRunes {
			continue
		}
		if isStopTerm(base) {
			continue
		}

		terms = append(terms, base)
	}

	return terms, nil
}
