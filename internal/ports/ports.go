package ports

import (
	"context"
	"time"

	"IRNotifier/internal/domain"
)

// Notifier delivers an alert to an external channel (Slack, etc.).
type Notifier interface {
	Deliver(ctx context.Context, alert domain.Alert) error
}

// AuditLog appends one decision record to the append-only ledger.
type AuditLog interface {
	Append(record domain.AuditRecord) error
}

// DocumentRepository persists scored documents for deduplication/history.
type DocumentRepository interface {
	AlreadyProcessed(ctx context.Context, fingerprints []string) (map[string]bool, error)
	SaveProcessed(ctx context.Context, result domain.ScoringResult, outcome domain.NotificationOutcome) error
}

// CorpusSource pulls raw disclosure texts for dictionary generation.
type CorpusSource interface {
	FetchTexts(ctx context.Context, limit int) ([]string, error)
}

// TermExtractor segments text into normalized candidate terms.
type TermExtractor interface {
	Extract(text string) ([]string, error)
}

// Watcher reports newly created files under a directory.
type Watcher interface {
	Start(ctx context.Context, dir string, onCreate func(path string)) error
	Stop() error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
