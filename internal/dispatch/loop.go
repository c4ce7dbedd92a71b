package dispatch

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
)

// Task is one scheduled unit of work. The context is canceled when the loop
// is forcibly stopped after its grace period.
type Task func(ctx context.Context)

// Loop drives a Task on a recurring schedule: one initial delay, then a fixed
// interval. A panic or error inside one tick never prevents future ticks.
type Loop struct {
	name         string
	initialDelay time.Duration
	interval     time.Duration
	task         Task
	logger       *slog.Logger

	cancel  context.CancelFunc
	tickCtx context.Context
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewLoop creates a loop that is not yet running
func NewLoop(name string, initialDelay, interval time.Duration, task Task, logger *slog.Logger) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		name:         name,
		initialDelay: initialDelay,
		interval:     interval,
		task:         task,
		logger:       logger,
		cancel:       cancel,
		tickCtx:      ctx,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the schedule on its own goroutine
func (l *Loop) Start() {
	go l.run()
}

func (l *Loop) run() {
	defer close(l.doneCh)

	timer := time.NewTimer(l.initialDelay)
	defer timer.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-timer.C:
			l.runTick()
			timer.Reset(l.interval)
		}
	}
}

func (l *Loop) runTick() {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panic in scheduled task",
				slog.String("task", l.name),
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	l.task(l.tickCtx)
}

// Stop halts the schedule, allowing an in-flight tick the given grace period
// before its context is canceled.
func (l *Loop) Stop(grace time.Duration) {
	close(l.stopCh)

	select {
	case <-l.doneCh:
	case <-time.After(grace):
		l.cancel()
		<-l.doneCh
	}
}

// NextDailyRun computes the next instant at hour:00 in now's location.
// If that instant has already passed today, the run is tomorrow.
func NextDailyRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
