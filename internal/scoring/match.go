package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// countBoundaryMatches counts non-overlapping literal occurrences of term
// in text that sit on word boundaries: the runes adjacent to the match must
// not be letters, digits, or underscore. Multi-word terms are matched as the
// literal phrase, so co-occurring parts alone never count.
func countBoundaryMatches(text, term string) int {
	if term == "" {
		return 0
	}

	count := 0
	start := 0
	for start <= len(text)-len(term) {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			break
		}
		pos := start + idx
		end := pos + len(term)

		if boundaryBefore(text, pos) && boundaryAfter(text, end) {
			count++
			start = end
			continue
		}

		// Not at a boundary: resume scanning one rune past the match start.
		_, size := utf8.DecodeRuneInString(text[pos:])
		start = pos + size
	}

	return count
}

func boundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
