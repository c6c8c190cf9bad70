// Package dictionary owns the active term-score mapping: source resolution
// with curated-over-generated precedence, backup-before-overwrite, and
// atomic wholesale replacement so concurrent readers never observe a
// partially loaded mapping.
package dictionary

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"IRNotifier/internal/domain"
)

const backupStampLayout = "20060102_150405"

// Store resolves, holds, and replaces the active dictionary.
type Store struct {
	customPath string
	autoPath   string
	backupDir  string
	logger     *slog.Logger

	active atomic.Pointer[domain.Dictionary]
	now    func() time.Time
}

// NewStore wires source paths. Logger may be nil.
func NewStore(customPath, autoPath, backupDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		customPath: customPath,
		autoPath:   autoPath,
		backupDir:  backupDir,
		logger:     logger,
		now:        time.Now,
	}
	s.active.Store(&domain.Dictionary{Terms: map[string]int{}, Provenance: domain.ProvenanceNone})
	return s
}

// Load resolves the dictionary by precedence: curated tabular file first,
// generated JSON second. A parse failure on one source advances to the next.
// When neither source is present or parseable the store keeps an empty
// mapping and returns ErrDictionaryUnavailable; scoring still works.
func (s *Store) Load() error {
	if s.customPath != "" {
		if _, err := os.Stat(s.customPath); err == nil {
			terms, err := loadCurated(s.customPath)
			if err != nil {
				s.logger.Warn("curated dictionary rejected", "path", s.customPath, "error", err)
			} else {
				s.Replace(domain.Dictionary{
					Terms:      terms,
					Provenance: domain.ProvenanceCurated,
					SourcePath: s.customPath,
				})
				s.logger.Info("curated dictionary loaded", "path", s.customPath, "terms", len(terms))
				return nil
			}
		}
	}

	if s.autoPath != "" {
		if _, err := os.Stat(s.autoPath); err == nil {
			terms, err := loadGenerated(s.autoPath, s.logger)
			if err != nil {
				s.logger.Warn("generated dictionary rejected", "path", s.autoPath, "error", err)
			} else {
				s.Replace(domain.Dictionary{
					Terms:      terms,
					Provenance: domain.ProvenanceGenerated,
					SourcePath: s.autoPath,
				})
				s.logger.Info("generated dictionary loaded", "path", s.autoPath, "terms", len(terms))
				return nil
			}
		}
	}

	s.Replace(domain.Dictionary{Terms: map[string]int{}, Provenance: domain.ProvenanceNone})
	return domain.ErrDictionaryUnavailable
}

// Active returns the current dictionary snapshot.
func (s *Store) Active() domain.Dictionary {
	return *s.active.Load()
}

// GetScore returns the base score of term, 0 for unknown terms.
func (s *Store) GetScore(term string) int {
	return s.active.Load().Score(term)
}

// Replace swaps in a new dictionary wholesale.
func (s *Store) Replace(d domain.Dictionary) {
	if d.Terms == nil {
		d.Terms = map[string]int{}
	}
	s.active.Store(&d)
}

// Backup copies the currently loaded source file into the backup directory
// with a timestamp suffix. No-op when no source file is loaded.
func (s *Store) Backup() (string, error) {
	src := s.active.Load().SourcePath
	if src == "" {
		return "", nil
	}
	if _, err := os.Stat(src); err != nil {
		return "", nil
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(filepath.Base(src), ext)
	name := fmt.Sprintf("%s_%s%s", stem, s.now().Format(backupStampLayout), ext)
	dst := filepath.Join(s.backupDir, name)

	raw, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read source %s: %w", src, err)
	}
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", dst, err)
	}

	s.logger.Info("dictionary backed up", "path", dst)
	return dst, nil
}

// SaveGenerated persists a freshly generated mapping to the auto-dictionary
// path as indented UTF-8 JSON and swaps it in as the active dictionary.
func (s *Store) SaveGenerated(terms map[string]int) error {
	if err := os.MkdirAll(filepath.Dir(s.autoPath), 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}

	raw, err := json.MarshalIndent(terms, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dictionary: %w", err)
	}
	if err := os.WriteFile(s.autoPath, raw, 0o644); err != nil {
		return fmt.Errorf("write dictionary %s: %w", s.autoPath, err)
	}

	s.Replace(domain.Dictionary{
		Terms:      terms,
		Provenance: domain.ProvenanceGenerated,
		SourcePath: s.autoPath,
	})
	s.logger.Info("generated dictionary saved", "path", s.autoPath, "terms", len(terms))
	return nil
}
