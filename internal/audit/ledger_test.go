package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IRNotifier/internal/domain"
)

func readLedger(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	l := NewLedger(dir, nil)

	ts := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	record := domain.AuditRecord{
		Timestamp:  ts,
		Symbol:     "7203",
		Title:      "業績予想の修正",
		Score:      85,
		Notified:   true,
		Provenance: domain.ProvenanceCurated,
		Keywords:   map[string]int{"赤字": 10, "減損": 8},
		Message:    "notified: 業績予想の修正 (85)",
	}

	require.NoError(t, l.Append(record))
	require.NoError(t, l.Append(record))

	path := filepath.Join(dir, "score_log_20260830.csv")
	rows := readLedger(t, path)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"datetime", "symbol", "title", "score",
		"notified", "dictionary_type", "keywords_used", "notification_message",
	}, rows[0])
	assert.Equal(t, []string{
		"2026-08-30 10:30:00", "7203", "業績予想の修正", "85",
		"true", "curated", "赤字 (10点), 減損 (8点)", "notified: 業績予想の修正 (85)",
	}, rows[1])
	assert.Equal(t, rows[1], rows[2])
}

func TestAppendSplitsByDay(t *testing.T) {
	dir := t.TempDir()
	l := NewLedger(dir, nil)

	day1 := domain.AuditRecord{Timestamp: time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)}
	day2 := domain.AuditRecord{Timestamp: time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)}

	require.NoError(t, l.Append(day1))
	require.NoError(t, l.Append(day2))

	assert.FileExists(t, filepath.Join(dir, "score_log_20260830.csv"))
	assert.FileExists(t, filepath.Join(dir, "score_log_20260831.csv"))
}

func TestAppendZeroTimestampUsesClock(t *testing.T) {
	dir := t.TempDir()
	l := NewLedger(dir, nil)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, l.Append(domain.AuditRecord{Symbol: "9984"}))

	rows := readLedger(t, filepath.Join(dir, "score_log_20260102.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-01-02 03:04:05", rows[1][0])
}

func TestFormatKeywords(t *testing.T) {
	assert.Equal(t, "", formatKeywords(nil))

	got := formatKeywords(map[string]int{"減損": 8, "赤字": 10, "訴訟": 8})
	assert.Equal(t, "赤字 (10点), 減損 (8点), 訴訟 (8点)", got)
}
