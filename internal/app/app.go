package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"IRNotifier/internal/audit"
	"IRNotifier/internal/config"
	"IRNotifier/internal/decision"
	"IRNotifier/internal/dictionary"
	"IRNotifier/internal/domain"
	"IRNotifier/internal/infrastructure/corpus"
	"IRNotifier/internal/infrastructure/scheduler"
	"IRNotifier/internal/infrastructure/slack"
	"IRNotifier/internal/infrastructure/storage"
	"IRNotifier/internal/infrastructure/watcher"
	"IRNotifier/internal/logging"
	"IRNotifier/internal/ports"
	"IRNotifier/internal/ranker"
	"IRNotifier/internal/reader"
	"IRNotifier/internal/scoring"
	"IRNotifier/internal/tokenizer"
	"IRNotifier/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *dictionary.Store
	pipeline *usecase.Pipeline
	reader   *reader.Reader
	watcher  ports.Watcher
	regen    ports.Scheduler
	repo     *storage.PostgresRepository
}

// New builds a runnable application instance. The dictionary is loaded at
// startup; an unavailable dictionary is logged, not fatal.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	extractor, err := tokenizer.New()
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}

	store := dictionary.NewStore(
		cfg.Paths.CustomDictionary,
		cfg.Paths.AutoDictionary,
		cfg.Paths.BackupDir,
		baseLogger.With("component", "dictionary"),
	)
	if err := store.Load(); err != nil {
		if errors.Is(err, domain.ErrDictionaryUnavailable) {
			baseLogger.Warn("no dictionary available, scoring will return zero until one is generated")
		} else {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
	}

	var notifier ports.Notifier
	if slack.Configured(cfg.Slack.WebhookURL) {
		notifier = slack.NewNotifier(cfg.Slack.WebhookURL)
	} else {
		baseLogger.Warn("slack webhook not configured, notifications disabled")
	}

	var repo *storage.PostgresRepository
	if cfg.Database.DSN != "" {
		repo, err = storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("document repository unavailable, dedup disabled", "error", err)
			repo = nil
		}
	}

	ledger := audit.NewLedger(cfg.Paths.LogsDir, baseLogger.With("component", "audit"))
	decider := decision.NewDecider(notifier, ledger, baseLogger.With("component", "decision"))
	scorer := scoring.NewScorer(baseLogger.With("component", "scoring"))

	fetcher := corpus.NewFetcher(nil, cfg.Generator.Sources, baseLogger.With("component", "corpus"))
	termRanker := ranker.NewRanker(extractor, cfg.Generator.MaxKeywords, baseLogger.With("component", "ranker"))

	var repoPort ports.DocumentRepository
	if repo != nil {
		repoPort = repo
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Store:       store,
		Scorer:      scorer,
		Decider:     decider,
		Ranker:      termRanker,
		Corpus:      fetcher,
		Repository:  repoPort,
		Threshold:   cfg.Slack.ScoreThreshold,
		CorpusLimit: cfg.Generator.CorpusLimit,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		store:    store,
		pipeline: pipeline,
		reader:   reader.New(nil, baseLogger.With("component", "reader")),
		watcher:  watcher.NewDirWatcher(cfg.Watch.Extensions, baseLogger.With("component", "watcher")),
		regen:    scheduler.NewTickerScheduler(cfg.Generator.Interval),
		repo:     repo,
	}, nil
}

// Pipeline exposes the scoring workflow for the CLI driver.
func (a *Application) Pipeline() *usecase.Pipeline { return a.pipeline }

// Reader exposes document acquisition for the CLI driver.
func (a *Application) Reader() *reader.Reader { return a.reader }

// Watch observes the configured directory and scores every new disclosure
// file until the context ends. Also starts periodic dictionary regeneration
// when an interval is configured.
func (a *Application) Watch(ctx context.Context) error {
	if a.cfg.Watch.Dir == "" {
		return fmt.Errorf("no watch directory configured")
	}

	onCreate := func(path string) {
		// Dispatch per file so a slow delivery never blocks the watcher.
		go a.processFile(ctx, path)
	}

	if err := a.watcher.Start(ctx, a.cfg.Watch.Dir, onCreate); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = a.watcher.Stop() }()

	if a.cfg.Generator.Interval > 0 {
		job := func(trigger time.Time) {
			a.logger.Info("scheduled dictionary regeneration", "trigger", trigger.In(a.cfg.Generator.Location()))
			if err := a.pipeline.RegenerateDictionary(ctx); err != nil {
				a.logger.Error("dictionary regeneration failed", "error", err)
			}
		}
		if err := a.regen.Start(ctx, job); err != nil {
			return fmt.Errorf("start regeneration scheduler: %w", err)
		}
		defer func() { _ = a.regen.Stop(context.Background()) }()
	}

	<-ctx.Done()
	return nil
}

func (a *Application) processFile(ctx context.Context, path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		docs, err := a.reader.FromCSV(path)
		if err != nil {
			a.logger.Error("csv batch rejected", "path", path, "error", err)
			return
		}
		if _, err := a.pipeline.ProcessBatch(ctx, docs); err != nil {
			a.logger.Error("batch processing failed", "path", path, "error", err)
		}

	default:
		doc, err := a.reader.FromFile(path)
		if err != nil {
			a.logger.Error("file read failed", "path", path, "error", err)
			return
		}
		a.pipeline.ProcessDocument(ctx, doc)
	}
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
