package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"IRNotifier/internal/domain"
	"IRNotifier/internal/ports"
)

const placeholderWebhookPrefix = "https://hooks.slack.com/services/XXXXX"

// Notifier posts alerts to a Slack incoming webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the webhook URL.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the webhook URL looks usable.
func Configured(webhookURL string) bool {
	return webhookURL != "" && !strings.HasPrefix(webhookURL, placeholderWebhookPrefix)
}

// Deliver renders the alert as Slack Block Kit JSON and posts it.
func (n *Notifier) Deliver(ctx context.Context, alert domain.Alert) error {
	if !Configured(n.webhookURL) || n.client == nil {
		return fmt.Errorf("slack notifier misconfigured")
	}

	body, err := json.Marshal(buildMessage(alert))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack error: %s", resp.Status)
	}

	return nil
}

type block map[string]any

func buildMessage(alert domain.Alert) map[string]any {
	keywords := make([]string, 0, len(alert.Top))
	for _, kw := range alert.Top {
		keywords = append(keywords, fmt.Sprintf("%s (%d点)", kw.Term, kw.Score))
	}

	symbolText := ""
	if alert.Symbol != "" {
		symbolText = fmt.Sprintf("（%s）", alert.Symbol)
	}

	blocks := []block{
		{
			"type": "header",
			"text": block{
				"type":  "plain_text",
				"text":  fmt.Sprintf("📢 重大IR検知 - %d点", alert.Score),
				"emoji": true,
			},
		},
		{
			"type": "section",
			"fields": []block{
				{"type": "mrkdwn", "text": fmt.Sprintf("*タイトル:*\n%s%s", alert.Title, symbolText)},
				{"type": "mrkdwn", "text": fmt.Sprintf("*スコア:*\n%d点 / 100点", alert.Score)},
			},
		},
		{
			"type": "section",
			"fields": []block{
				{"type": "mrkdwn", "text": "*検出キーワード:*\n" + strings.Join(keywords, ", ")},
				{"type": "mrkdwn", "text": "*辞書タイプ:*\n" + strings.ToUpper(string(alert.Provenance))},
			},
		},
	}

	if alert.SourceURL != "" {
		blocks = append(blocks, block{
			"type": "section",
			"text": block{"type": "mrkdwn", "text": fmt.Sprintf("<%s|ソースを開く>", alert.SourceURL)},
		})
	}

	blocks = append(blocks,
		block{
			"type": "section",
			"text": block{"type": "mrkdwn", "text": fmt.Sprintf("*プレビュー:*\n```%s```", alert.Preview)},
		},
		block{
			"type": "context",
			"elements": []block{
				{"type": "mrkdwn", "text": "IR Impact Notifier • " + alert.GeneratedAt.Format("2006-01-02 15:04:05")},
			},
		},
	)

	return map[string]any{"blocks": blocks}
}
