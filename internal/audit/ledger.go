// Package audit appends every scoring decision to an append-only per-day
// CSV ledger.
package audit

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"IRNotifier/internal/domain"
	"IRNotifier/internal/ports"
)

var header = []string{
	"datetime", "symbol", "title", "score",
	"notified", "dictionary_type", "keywords_used", "notification_message",
}

// Ledger writes one CSV row per decision into score_log_<YYYYMMDD>.csv.
// Appends are serialized so concurrent batches never interleave rows.
type Ledger struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

var _ ports.AuditLog = (*Ledger)(nil)

// NewLedger writes ledgers under dir. Logger may be nil.
func NewLedger(dir string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{dir: dir, logger: logger, now: time.Now}
}

// Append writes one record. The header is written once when the day file is
// first created. Records are never mutated after append.
func (l *Ledger) Append(record domain.AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := record.Timestamp
	if ts.IsZero() {
		ts = l.now()
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	path := filepath.Join(l.dir, fmt.Sprintf("score_log_%s.csv", ts.Format("20060102")))

	_, statErr := os.Stat(path)
	needHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}

	row := []string{
		ts.Format("2006-01-02 15:04:05"),
		record.Symbol,
		record.Title,
		strconv.Itoa(record.Score),
		strconv.FormatBool(record.Notified),
		string(record.Provenance),
		formatKeywords(record.Keywords),
		record.Message,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}

	l.logger.Debug("audit record appended", "path", path)
	return nil
}

// formatKeywords renders contributions as "term (N点)" pairs, highest first.
func formatKeywords(keywords map[string]int) string {
	ordered := domain.ScoringResult{Contributions: keywords}.TopContributions(0)

	out := ""
	for i, kw := range ordered {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s (%d点)", kw.Term, kw.Score)
	}
	return out
}
