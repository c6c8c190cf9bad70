// Package corpus pulls raw disclosure texts from configured news sources
// for dictionary generation.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"IRNotifier/internal/config"
	"IRNotifier/internal/ports"
)

const (
	fetchConcurrency = 4
	overallBudget    = 2 * time.Minute
	minArticleRunes  = 100
)

// Fetcher scrapes configured list pages and collects article texts with
// bounded concurrency. Per-item failures are logged and skipped; they never
// cancel sibling fetches.
type Fetcher struct {
	client  *http.Client
	sources []config.SourceConfig
	logger  *slog.Logger
}

var _ ports.CorpusSource = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; nil gets a 30s-timeout default.
func NewFetcher(client *http.Client, sources []config.SourceConfig, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, sources: sources, logger: logger}
}

// FetchTexts returns up to limit article texts across all sources.
func (f *Fetcher) FetchTexts(ctx context.Context, limit int) ([]string, error) {
	if len(f.sources) == 0 {
		return nil, fmt.Errorf("no corpus sources configured")
	}
	if limit <= 0 {
		limit = 100
	}

	ctx, cancel := context.WithTimeout(ctx, overallBudget)
	defer cancel()

	perSource := limit / len(f.sources)
	if perSource == 0 {
		perSource = 1
	}

	var (
		mu    sync.Mutex
		texts []string
	)

	for _, source := range f.sources {
		links, err := f.collectLinks(ctx, source, perSource)
		if err != nil {
			f.logger.Error("corpus source failed", "source", source.Name, "error", err)
			continue
		}
		f.logger.Info("corpus links collected", "source", source.Name, "links", len(links))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(fetchConcurrency)

		for _, link := range links {
			link := link
			g.Go(func() error {
				text, err := f.fetchArticle(gctx, link, source.TextSelector)
				if err != nil {
					// Isolated: a failed article never cancels siblings.
					f.logger.Warn("article fetch failed", "url", link, "error", err)
					return nil
				}
				if utf8.RuneCountInString(text) < minArticleRunes {
					return nil
				}
				mu.Lock()
				texts = append(texts, text)
				mu.Unlock()
				return nil
			})
		}

		_ = g.Wait()
	}

	f.logger.Info("corpus fetched", "texts", len(texts))
	return texts, nil
}

func (f *Fetcher) collectLinks(ctx context.Context, source config.SourceConfig, limit int) ([]string, error) {
	doc, err := f.fetchDocument(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %s: %w", source.URL, err)
	}

	var links []string
	doc.Find(source.LinkSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		links = append(links, base.ResolveReference(ref).String())
		return len(links) < limit
	})

	return links, nil
}

func (f *Fetcher) fetchArticle(ctx context.Context, link, textSelector string) (string, error) {
	doc, err := f.fetchDocument(ctx, link)
	if err != nil {
		return "", err
	}

	var parts []string
	doc.Find(textSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " "), nil
}

func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "IRNotifier/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}
