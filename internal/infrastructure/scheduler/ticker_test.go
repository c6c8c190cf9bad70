package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerSchedulerFires(t *testing.T) {
	s := NewTickerScheduler(10 * time.Millisecond)

	ticks := make(chan time.Time, 8)
	require.NoError(t, s.Start(context.Background(), func(ts time.Time) {
		select {
		case ticks <- ts:
		default:
		}
	}))
	defer func() { _ = s.Stop(context.Background()) }()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never fired")
	}
}

func TestTickerSchedulerStop(t *testing.T) {
	s := NewTickerScheduler(time.Hour)

	require.NoError(t, s.Start(context.Background(), func(time.Time) {}))
	require.NoError(t, s.Stop(context.Background()))

	// Stop again is a no-op.
	assert.NoError(t, s.Stop(context.Background()))
}

func TestTickerSchedulerRestart(t *testing.T) {
	s := NewTickerScheduler(10 * time.Millisecond)

	require.NoError(t, s.Start(context.Background(), func(time.Time) {}))
	require.NoError(t, s.Stop(context.Background()))

	// A stopped scheduler can be started again and its ticks reach only
	// the new job.
	ticks := make(chan time.Time, 8)
	require.NoError(t, s.Start(context.Background(), func(ts time.Time) {
		select {
		case ticks <- ts:
		default:
		}
	}))
	defer func() { _ = s.Stop(context.Background()) }()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("restarted scheduler never fired")
	}
}

func TestTickerSchedulerNilJob(t *testing.T) {
	s := NewTickerScheduler(time.Hour)

	require.NoError(t, s.Start(context.Background(), nil))
	assert.NoError(t, s.Stop(context.Background()))
}

func TestTickerSchedulerDefaultInterval(t *testing.T) {
	s := NewTickerScheduler(0)
	assert.Equal(t, 24*time.Hour, s.interval)
}
