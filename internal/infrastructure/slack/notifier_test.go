package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IRNotifier/internal/domain"
)

func sampleAlert() domain.Alert {
	return domain.Alert{
		Score:  85,
		Symbol: "7203",
		Title:  "業績予想の下方修正",
		Top: []domain.TermContribution{
			{Term: "赤字", Score: 10},
			{Term: "減損", Score: 8},
		},
		Provenance:  domain.ProvenanceCurated,
		SourceURL:   "https://example.com/ir/7203.html",
		Preview:     "当社は通期の業績予想を下方修正します。",
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestConfigured(t *testing.T) {
	assert.False(t, Configured(""))
	assert.False(t, Configured("https://hooks.slack.com/services/XXXXX/YYYYY/ZZZZZ"))
	assert.True(t, Configured("https://hooks.slack.com/services/T000/B000/secret"))
}

func TestDeliver(t *testing.T) {
	var payload []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		payload, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	n.client = srv.Client()

	require.NoError(t, n.Deliver(context.Background(), sampleAlert()))

	var msg map[string]any
	require.NoError(t, json.Unmarshal(payload, &msg))
	blocks, ok := msg["blocks"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, blocks)

	body := string(payload)
	assert.Contains(t, body, "重大IR検知 - 85点")
	assert.Contains(t, body, "赤字 (10点)")
	assert.Contains(t, body, "業績予想の下方修正（7203）")
	assert.Contains(t, body, "CURATED")
	assert.Contains(t, body, "https://example.com/ir/7203.html")
	assert.Contains(t, body, "2026-08-30 12:00:00")
}

func TestDeliverOmitsSourceBlockWithoutURL(t *testing.T) {
	var payload []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	n.client = srv.Client()

	alert := sampleAlert()
	alert.SourceURL = ""
	require.NoError(t, n.Deliver(context.Background(), alert))

	assert.NotContains(t, string(payload), "ソースを開く")
}

func TestDeliverErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	n.client = srv.Client()

	err := n.Deliver(context.Background(), sampleAlert())
	assert.Error(t, err)
}

func TestDeliverMisconfigured(t *testing.T) {
	n := NewNotifier("")
	assert.Error(t, n.Deliver(context.Background(), sampleAlert()))
}
