package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"IRNotifier/internal/decision"
	"IRNotifier/internal/dictionary"
	"IRNotifier/internal/domain"
	"IRNotifier/internal/ports"
	"IRNotifier/internal/ranker"
	"IRNotifier/internal/scoring"
)

const batchConcurrency = 4

// PipelineDeps wires all components into the scoring workflow.
type PipelineDeps struct {
	Store       *dictionary.Store
	Scorer      *scoring.Scorer
	Decider     *decision.Decider
	Ranker      *ranker.Ranker
	Corpus      ports.CorpusSource
	Repository  ports.DocumentRepository
	Threshold   int
	CorpusLimit int
	Logger      *slog.Logger
}

// Pipeline implements the document-scoring workflow: score, decide, persist.
type Pipeline struct {
	store       *dictionary.Store
	scorer      *scoring.Scorer
	decider     *decision.Decider
	ranker      *ranker.Ranker
	corpus      ports.CorpusSource
	repository  ports.DocumentRepository
	threshold   int
	corpusLimit int
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:       deps.Store,
		scorer:      deps.Scorer,
		decider:     deps.Decider,
		ranker:      deps.Ranker,
		corpus:      deps.Corpus,
		repository:  deps.Repository,
		threshold:   deps.Threshold,
		corpusLimit: deps.CorpusLimit,
		logger:      logger,
	}
}

// ProcessDocument scores one document against the active dictionary
// snapshot, applies the threshold decision, and persists the outcome.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc domain.Document) (domain.ScoringResult, domain.NotificationOutcome) {
	result := p.scorer.Score(doc, p.store.Active())
	outcome := p.decider.Decide(ctx, result, p.threshold)

	if p.repository != nil {
		if err := p.repository.SaveProcessed(ctx, result, outcome); err != nil {
			p.logger.Error("persist scored document failed", "title", doc.Title, "error", err)
		}
	}

	return result, outcome
}

// ProcessBatch scores a batch of documents with per-document dispatch so one
// slow delivery never blocks the rest. Documents already processed (per the
// repository) are skipped. Returns the number of documents scored.
func (p *Pipeline) ProcessBatch(ctx context.Context, docs []domain.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	skip := map[string]bool{}
	if p.repository != nil {
		fingerprints := make([]string, len(docs))
		for i, doc := range docs {
			fingerprints[i] = doc.Fingerprint()
		}

		var err error
		skip, err = p.repository.AlreadyProcessed(ctx, fingerprints)
		if err != nil {
			return 0, fmt.Errorf("load processed: %w", err)
		}
	}

	var (
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, batchConcurrency)
		processed int
		mu        sync.Mutex
	)

	for _, doc := range docs {
		if skip[doc.Fingerprint()] {
			p.logger.Debug("document already processed", "title", doc.Title)
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(doc domain.Document) {
			defer wg.Done()
			defer func() { <-semaphore }()

			p.ProcessDocument(ctx, doc)

			mu.Lock()
			processed++
			mu.Unlock()
		}(doc)
	}

	wg.Wait()
	p.logger.Info("batch processed", "total", len(docs), "scored", processed)
	return processed, nil
}

// RegenerateDictionary fetches a fresh corpus, builds a new generated
// dictionary, backs up the current source, and swaps the new mapping in.
// On any failure the prior dictionary is left untouched.
func (p *Pipeline) RegenerateDictionary(ctx context.Context) error {
	if p.corpus == nil || p.ranker == nil {
		return fmt.Errorf("dictionary generation is not configured")
	}

	texts, err := p.corpus.FetchTexts(ctx, p.corpusLimit)
	if err != nil {
		return fmt.Errorf("fetch corpus: %w", err)
	}
	if len(texts) == 0 {
		return domain.ErrEmptyCorpus
	}

	dict, err := p.ranker.BuildDictionary(texts)
	if err != nil {
		return fmt.Errorf("build dictionary: %w", err)
	}

	if _, err := p.store.Backup(); err != nil {
		return fmt.Errorf("backup dictionary: %w", err)
	}

	if err := p.store.SaveGenerated(dict); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}

	return nil
}
