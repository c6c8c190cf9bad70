package dictionary

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"IRNotifier/internal/domain"
)

// loadCurated reads a hand-curated tabular dictionary. CSV and XLSX are
// supported; both need a header row with word and score columns (a note
// column is allowed and ignored).
func loadCurated(path string) (map[string]int, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		return nil, fmt.Errorf("%w: unsupported curated format %s", domain.ErrDictionaryParse, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return parseCuratedRows(rows)
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDictionaryParse, err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDictionaryParse, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDictionaryParse, err)
	}
	return rows, nil
}

func parseCuratedRows(rows [][]string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrDictionaryParse)
	}

	wordCol, scoreCol := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "word":
			wordCol = i
		case "score":
			scoreCol = i
		}
	}
	if wordCol < 0 || scoreCol < 0 {
		return nil, fmt.Errorf("%w: missing word/score columns", domain.ErrDictionaryParse)
	}

	terms := make(map[string]int)
	for _, row := range rows[1:] {
		if wordCol >= len(row) {
			continue
		}
		term := strings.TrimSpace(row[wordCol])
		if term == "" {
			continue
		}

		if scoreCol >= len(row) {
			return nil, fmt.Errorf("%w: row for %q has no score", domain.ErrDictionaryParse, term)
		}

		score, err := coerceScore(row[scoreCol])
		if err != nil {
			return nil, fmt.Errorf("%w: score for %q: %v", domain.ErrDictionaryParse, term, err)
		}
		terms[term] = score
	}

	return terms, nil
}

// coerceScore accepts integer cells and truncates float cells, mirroring
// how spreadsheet tools often store whole numbers as floats.
func coerceScore(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.Atoi(cell); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", cell)
	}
	return int(f), nil
}

// loadGenerated reads the flat JSON term-score mapping produced by the
// ranker. Entries with non-numeric scores are skipped with a warning.
func loadGenerated(path string, logger *slog.Logger) (map[string]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDictionaryParse, err)
	}

	terms := make(map[string]int, len(data))
	for key, value := range data {
		term := strings.TrimSpace(key)
		if term == "" {
			continue
		}

		score, ok := value.(float64)
		if !ok {
			logger.Warn("skipping non-numeric dictionary score", "term", term, "value", value)
			continue
		}
		terms[term] = int(score)
	}

	return terms, nil
}
