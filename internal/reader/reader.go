// Package reader builds scoring documents from the supported origins:
// direct text, plain files, HTML pages, and tabular CSV batches.
package reader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"IRNotifier/internal/domain"
)

const defaultTitle = "直接入力されたテキスト"

// Reader turns external inputs into immutable documents.
type Reader struct {
	client *http.Client
	logger *slog.Logger
}

// New wires an HTTP client for URL reads; nil gets a 30s-timeout default.
func New(client *http.Client, logger *slog.Logger) *Reader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{client: client, logger: logger}
}

// FromText builds a document from directly entered text. When no symbol is
// given it is extracted from the body via securities-code patterns.
func (r *Reader) FromText(text, title, symbol string) domain.Document {
	if title == "" {
		title = defaultTitle
	}
	if symbol == "" {
		symbol = extractSymbolFromText(text)
	}
	return domain.Document{
		Symbol: symbol,
		Title:  title,
		Body:   text,
		Origin: domain.OriginDirect,
	}
}

// FromFile reads one plain-text disclosure. The file name becomes the title
// and a four-digit code in it becomes the symbol.
func (r *Reader) FromFile(path string) (domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read file %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return domain.Document{
		Symbol: extractSymbolFromFilename(name),
		Title:  name,
		Body:   string(raw),
		Origin: domain.OriginFile,
	}, nil
}

// FromCSV reads a batch of documents from a CSV file. The content column is
// required; a batch without it is rejected wholesale before any row is
// scored. Symbol and title columns are optional.
func (r *Reader) FromCSV(path string) ([]domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrMalformedBatch, path)
	}

	contentCol, symbolCol, titleCol := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "content":
			contentCol = i
		case "symbol":
			symbolCol = i
		case "title":
			titleCol = i
		}
	}
	if contentCol < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedBatch, path)
	}

	documents := make([]domain.Document, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if contentCol >= len(row) {
			continue
		}

		symbol := ""
		if symbolCol >= 0 && symbolCol < len(row) {
			symbol = strings.TrimSpace(row[symbolCol])
		}

		title := fmt.Sprintf("CSV行 %d", i+1)
		if titleCol >= 0 && titleCol < len(row) && strings.TrimSpace(row[titleCol]) != "" {
			title = strings.TrimSpace(row[titleCol])
		}

		documents = append(documents, domain.Document{
			Symbol: symbol,
			Title:  title,
			Body:   row[contentCol],
			Origin: domain.OriginCSV,
		})
	}

	r.logger.Info("csv batch loaded", "path", path, "documents", len(documents))
	return documents, nil
}

// FromURL fetches a page and extracts the disclosure text. HTML pages go
// through content extraction; plain text is taken as-is; other content
// types yield a document with an empty body, which scores zero.
func (r *Reader) FromURL(ctx context.Context, rawURL string) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "IRNotifier/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	switch {
	case strings.Contains(contentType, "text/html"):
		return parseHTMLDocument(resp.Body, rawURL)

	case strings.Contains(contentType, "text/plain"):
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return domain.Document{}, fmt.Errorf("read %s: %w", rawURL, err)
		}
		return domain.Document{
			Symbol:    extractSymbolFromURL(rawURL),
			Title:     extractTitleFromURL(rawURL),
			Body:      string(raw),
			Origin:    domain.OriginURL,
			SourceURL: rawURL,
		}, nil

	default:
		r.logger.Warn("unsupported content type", "url", rawURL, "contentType", contentType)
		return domain.Document{
			Symbol:    extractSymbolFromURL(rawURL),
			Title:     "[未対応形式] " + extractTitleFromURL(rawURL),
			Origin:    domain.OriginURL,
			SourceURL: rawURL,
		}, nil
	}
}
