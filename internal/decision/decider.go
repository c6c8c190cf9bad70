// Package decision applies the notification threshold to scoring results,
// invokes the external notifier, and records every decision in the audit
// ledger.
package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"IRNotifier/internal/domain"
	"IRNotifier/internal/ports"
)

const defaultDeliveryTimeout = 10 * time.Second

// Decider turns a scoring result into a notification outcome. Exactly one
// audit record is appended per call, whatever the outcome.
type Decider struct {
	notifier ports.Notifier
	audit    ports.AuditLog
	logger   *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewDecider wires the notifier (nil means unconfigured) and the ledger.
func NewDecider(notifier ports.Notifier, audit ports.AuditLog, logger *slog.Logger) *Decider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decider{
		notifier: notifier,
		audit:    audit,
		logger:   logger,
		timeout:  defaultDeliveryTimeout,
		now:      time.Now,
	}
}

// Decide compares the score against the threshold and notifies when it is
// met. Delivery failures are converted to a not-notified outcome, never
// propagated.
func (d *Decider) Decide(ctx context.Context, result domain.ScoringResult, threshold int) domain.NotificationOutcome {
	outcome := d.decide(ctx, result, threshold)
	d.record(result, outcome)
	return outcome
}

func (d *Decider) decide(ctx context.Context, result domain.ScoringResult, threshold int) domain.NotificationOutcome {
	now := d.now()

	if result.Score < threshold {
		d.logger.Info("below threshold, not notifying", "score", result.Score, "threshold", threshold)
		return domain.NotificationOutcome{
			Notified:  false,
			Reason:    fmt.Sprintf("below threshold: score %d < %d", result.Score, threshold),
			Timestamp: now,
		}
	}

	if d.notifier == nil {
		d.logger.Warn("notifier unconfigured, not notifying", "score", result.Score)
		return domain.NotificationOutcome{
			Notified:  false,
			Reason:    "notifier unconfigured",
			Timestamp: now,
		}
	}

	alert := domain.NewAlert(result, now)

	deliverCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.notifier.Deliver(deliverCtx, alert); err != nil {
		d.logger.Error("notification delivery failed", "error", err, "title", alert.Title)
		return domain.NotificationOutcome{
			Notified:  false,
			Reason:    fmt.Sprintf("delivery failed: %v", err),
			Timestamp: now,
		}
	}

	d.logger.Info("notification delivered", "title", alert.Title, "score", result.Score)
	return domain.NotificationOutcome{
		Notified:  true,
		Reason:    fmt.Sprintf("notified: %s (%d)", alert.Title, result.Score),
		Timestamp: now,
	}
}

func (d *Decider) record(result domain.ScoringResult, outcome domain.NotificationOutcome) {
	if d.audit == nil {
		return
	}

	record := domain.AuditRecord{
		Timestamp:  outcome.Timestamp,
		Symbol:     result.Document.Symbol,
		Title:      result.Document.Title,
		Score:      result.Score,
		Notified:   outcome.Notified,
		Provenance: result.Provenance,
		Keywords:   result.Contributions,
		Message:    outcome.Reason,
	}

	if err := d.audit.Append(record); err != nil {
		d.logger.Error("audit append failed", "error", err)
	}
}
