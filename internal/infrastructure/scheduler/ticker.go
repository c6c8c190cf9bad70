package scheduler

import (
	"context"
	"time"

	"IRNotifier/internal/ports"
)

// TickerScheduler fires a recurring job on a fixed interval. It drives
// periodic dictionary regeneration.
type TickerScheduler struct {
	interval time.Duration
	stop     chan struct{}
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler; non-positive intervals default to
// 24 hours.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &TickerScheduler{interval: interval}
}

// Start begins ticking. The job runs on each tick, not at start.
func (t *TickerScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if t.stop != nil {
		return nil
	}

	// The goroutine reads a captured copy so Stop can clear the field
	// without racing the select loop.
	stop := make(chan struct{})
	t.stop = stop
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case tick := <-ticker.C:
				job(tick)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (t *TickerScheduler) Stop(ctx context.Context) error {
	if t.stop == nil {
		return nil
	}
	close(t.stop)
	t.stop = nil
	return nil
}
