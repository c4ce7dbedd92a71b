package dispatch

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNextDailyRunBeforeHour(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	next := NextDailyRun(now, 12)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), next)
}

func TestNextDailyRunAfterHour(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	next := NextDailyRun(now, 12)
	assert.Equal(t, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), next)
}

func TestNextDailyRunExactlyAtHourFiresToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	next := NextDailyRun(now, 12)
	assert.Equal(t, now, next)
}

func TestLoopRunsRepeatedly(t *testing.T) {
	var ticks atomic.Int32
	loop := NewLoop("test", 0, 5*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	}, discardLogger())

	loop.Start()
	assert.Eventually(t, func() bool {
		return ticks.Load() >= 3
	}, time.Second, time.Millisecond)

	loop.Stop(time.Second)
}

func TestLoopSurvivesPanickingTask(t *testing.T) {
	var ticks atomic.Int32
	loop := NewLoop("test", 0, 5*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
		panic("boom")
	}, discardLogger())

	loop.Start()
	assert.Eventually(t, func() bool {
		return ticks.Load() >= 2
	}, time.Second, time.Millisecond)

	loop.Stop(time.Second)
}

func TestStopCancelsStuckTask(t *testing.T) {
	started := make(chan struct{})
	canceled := make(chan struct{})

	loop := NewLoop("test", 0, time.Hour, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(canceled)
	}, discardLogger())

	loop.Start()
	<-started

	done := make(chan struct{})
	go func() {
		loop.Stop(10 * time.Millisecond)
		close(done)
	}()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("stuck task was never canceled")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
