package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"IRNotifier/internal/domain"
	"IRNotifier/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS processed_documents (
	fingerprint     TEXT PRIMARY KEY,
	symbol          TEXT NOT NULL DEFAULT '',
	title           TEXT NOT NULL DEFAULT '',
	score           INTEGER NOT NULL,
	notified        BOOLEAN NOT NULL,
	dictionary_type TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository persists scored documents for deduplication and score
// history.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.DocumentRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	repo := NewPostgresRepository(db)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, nil
}

// NewPostgresRepository wires an existing sql.DB.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// AlreadyProcessed returns a map with fingerprints that already exist.
func (r *PostgresRepository) AlreadyProcessed(ctx context.Context, fingerprints []string) (map[string]bool, error) {
	if r.db == nil || len(fingerprints) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("fingerprint").
		From("processed_documents").
		Where(sq.Eq{"fingerprint": fingerprints}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query processed: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		result[fp] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveProcessed upserts the scored document snapshot.
func (r *PostgresRepository) SaveProcessed(ctx context.Context, result domain.ScoringResult, outcome domain.NotificationOutcome) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("processed_documents").
		Columns("fingerprint", "symbol", "title", "score", "notified", "dictionary_type").
		Values(
			result.Document.Fingerprint(),
			result.Document.Symbol,
			result.Document.Title,
			result.Score,
			outcome.Notified,
			string(result.Provenance),
		).
		Suffix(`ON CONFLICT (fingerprint) DO UPDATE
			SET score = EXCLUDED.score,
			    notified = EXCLUDED.notified,
			    dictionary_type = EXCLUDED.dictionary_type,
			    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert processed: %w", err)
	}

	return nil
}
