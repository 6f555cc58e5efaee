package sysmetrics

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const (
	// repeatWindow is how long an identical failure stays suppressed.
	repeatWindow = time.Hour

	// repeatSummaryEvery controls how often a summary of suppressed
	// repeats is logged.
	repeatSummaryEvery = 100
)

// failureTracker deduplicates repeated identical failures for one metric.
type failureTracker struct {
	lastMsg    string
	lastTime   time.Time
	suppressed int64
}

// failureLog logs sampling failures without flooding the log: a sampler
// that fails every second (a desktop asked for its battery) logs once, then
// a summary every repeatSummaryEvery repeats.
type failureLog struct {
	logger *slog.Logger

	mu       sync.Mutex
	trackers map[Kind]*failureTracker
	now      func() time.Time
}

func newFailureLog(logger *slog.Logger) *failureLog {
	return &failureLog{
		logger:   logger,
		trackers: make(map[Kind]*failureTracker),
		now:      time.Now,
	}
}

// record logs err for kind unless it repeats the previous failure.
func (f *failureLog) record(kind Kind, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ErrNoPowerSource) {
		level = slog.LevelDebug
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tracker := f.trackers[kind]
	if tracker == nil {
		tracker = &failureTracker{}
		f.trackers[kind] = tracker
	}

	msg := err.Error()
	now := f.now()
	if msg == tracker.lastMsg && now.Sub(tracker.lastTime) < repeatWindow {
		tracker.suppressed++
		if tracker.suppressed%repeatSummaryEvery == 0 {
			f.logger.Log(context.Background(), level, "sysmetrics: sampling still failing",
				"metric", kind.String(), "repeats", tracker.suppressed, "error", err)
		}
		return
	}

	if tracker.suppressed > 0 {
		f.logger.Log(context.Background(), level, "sysmetrics: previous failure repeated",
			"metric", kind.String(), "repeats", tracker.suppressed)
	}
	f.logger.Log(context.Background(), level, "sysmetrics: sampling failed, reporting 0",
		"metric", kind.String(), "error", err)

	tracker.lastMsg = msg
	tracker.lastTime = now
	tracker.suppressed = 0
}

// clear forgets the failure state for kind after a successful sample, so
// a later failure is logged again.
func (f *failureLog) clear(kind Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tracker := f.trackers[kind]
	if tracker == nil || tracker.lastMsg == "" {
		return
	}
	if tracker.suppressed > 0 {
		f.logger.Debug("sysmetrics: sampling recovered",
			"metric", kind.String(), "repeats", tracker.suppressed)
	}
	delete(f.trackers, kind)
}

// failing reports whether kind is currently in a failed state.
func (f *failureLog) failing(kind Kind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.trackers[kind]
	return ok
}
