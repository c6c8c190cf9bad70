package domain

import (
	"time"
	"unicode/utf8"
)

// Alert is the outbound notification payload built for a significant
// disclosure. Transports render it into their own wire format.
type Alert struct {
	Score       int
	Symbol      string
	Title       string
	Top         []TermContribution
	Provenance  Provenance
	SourceURL   string
	Preview     string
	GeneratedAt time.Time
}

const (
	alertTitleRunes   = 30
	alertPreviewRunes = 100
)

// NewAlert flattens a scoring result into a notification payload with a
// truncated title and a short body preview.
func NewAlert(result ScoringResult, now time.Time) Alert {
	return Alert{
		Score:       result.Score,
		Symbol:      result.Document.Symbol,
		Title:       truncateRunes(result.Document.Title, alertTitleRunes),
		Top:         result.TopContributions(5),
		Provenance:  result.Provenance,
		SourceURL:   result.Document.SourceURL,
		Preview:     truncateRunes(flattenNewlines(result.Document.Body), alertPreviewRunes),
		GeneratedAt: now,
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func flattenNewlines(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
