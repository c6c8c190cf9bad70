package reader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IRNotifier/internal/domain"
)

func TestFromText(t *testing.T) {
	r := New(nil, nil)

	doc := r.FromText("本文です。", "決算短信", "7203")
	assert.Equal(t, "7203", doc.Symbol)
	assert.Equal(t, "決算短信", doc.Title)
	assert.Equal(t, "本文です。", doc.Body)
	assert.Equal(t, domain.OriginDirect, doc.Origin)
}

func TestFromTextDefaults(t *testing.T) {
	r := New(nil, nil)

	doc := r.FromText("トヨタ自動車（7203）は本日、業績予想を修正した。", "", "")
	assert.Equal(t, "直接入力されたテキスト", doc.Title)
	assert.Equal(t, "7203", doc.Symbol)
}

func TestExtractSymbolFromText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "証券コード：7203", want: "7203"},
		{text: "コード: 9984 について", want: "9984"},
		{text: "当社（6758）の発表", want: "6758"},
		{text: "株式会社サンプル 1234 の件", want: "1234"},
		{text: "コードなし", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractSymbolFromText(tt.text), tt.text)
	}
}

func TestFromFile(t *testing.T) {
	r := New(nil, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "7203_決算発表.txt")
	require.NoError(t, os.WriteFile(path, []byte("本文"), 0o644))

	doc, err := r.FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "7203_決算発表", doc.Title)
	assert.Equal(t, "7203", doc.Symbol)
	assert.Equal(t, "本文", doc.Body)
	assert.Equal(t, domain.OriginFile, doc.Origin)
}

func TestFromFileMissing(t *testing.T) {
	r := New(nil, nil)

	_, err := r.FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestFromCSV(t *testing.T) {
	r := New(nil, nil)

	path := filepath.Join(t.TempDir(), "batch.csv")
	data := "symbol,title,content\n7203,決算,本文A\n,,本文B\n9984,,本文C\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	docs, err := r.FromCSV(path)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, domain.Document{Symbol: "7203", Title: "決算", Body: "本文A", Origin: domain.OriginCSV}, docs[0])
	assert.Equal(t, "CSV行 2", docs[1].Title)
	assert.Equal(t, "9984", docs[2].Symbol)
	assert.Equal(t, "CSV行 3", docs[2].Title)
}

func TestFromCSVMissingContentColumn(t *testing.T) {
	r := New(nil, nil)

	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte("symbol,title\n7203,決算\n"), 0o644))

	_, err := r.FromCSV(path)
	assert.ErrorIs(t, err, domain.ErrMalformedBatch)
}

func TestFromCSVEmptyFile(t *testing.T) {
	r := New(nil, nil)

	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := r.FromCSV(path)
	assert.ErrorIs(t, err, domain.ErrMalformedBatch)
}

func TestFromURLHTML(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>業績予想の修正について</title></head>
<body>
<nav>menu</nav>
<article>当社は通期の業績予想を下方修正します。赤字となる見込みです。詳細は添付資料を参照してください。</article>
<footer>(c) example</footer>
</body>
</html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	r := New(srv.Client(), nil)

	doc, err := r.FromURL(context.Background(), srv.URL+"/ir/7203.html")
	require.NoError(t, err)

	assert.Equal(t, "業績予想の修正について", doc.Title)
	assert.Equal(t, "7203", doc.Symbol)
	assert.Contains(t, doc.Body, "下方修正")
	assert.NotContains(t, doc.Body, "menu")
	assert.Equal(t, domain.OriginURL, doc.Origin)
	assert.Equal(t, srv.URL+"/ir/7203.html", doc.SourceURL)
}

func TestFromURLPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("プレーンテキストの開示"))
	}))
	defer srv.Close()

	r := New(srv.Client(), nil)

	doc, err := r.FromURL(context.Background(), srv.URL+"/ir-note.txt")
	require.NoError(t, err)

	assert.Equal(t, "プレーンテキストの開示", doc.Body)
	assert.Equal(t, "ir note", doc.Title)
}

func TestFromURLUnsupportedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	r := New(srv.Client(), nil)

	doc, err := r.FromURL(context.Background(), srv.URL+"/report.pdf")
	require.NoError(t, err)

	assert.Empty(t, doc.Body)
	assert.Equal(t, "[未対応形式] report", doc.Title)
}

func TestFromURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := New(srv.Client(), nil)

	_, err := r.FromURL(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestExtractTitleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://example.com/news/ir-update_2024.html", want: "ir update 2024"},
		{url: "https://example.com/", want: "example.com"},
		{url: "https://example.com/%E6%B1%BA%E7%AE%97.pdf", want: "決算"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractTitleFromURL(tt.url), tt.url)
	}
}
