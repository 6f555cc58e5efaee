// Package monitor keeps a rolling one-minute history of host metrics. A
// Monitor samples every metric on a fixed interval and commits each tick
// into a Store as one atomic update that concurrent readers observe as an
// immutable Snapshot.
package monitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
)

const (
	// DefaultInterval is the time between ticks.
	DefaultInterval = time.Second

	// DefaultStopTimeout is the maximum time Stop waits for an in-flight
	// sample to finish before returning. The sample's result is discarded
	// either way.
	DefaultStopTimeout = 5 * time.Second
)

// Options configures a Monitor.
type Options struct {
	// Interval between ticks (default: DefaultInterval).
	Interval time.Duration

	// Logger receives lifecycle and tick logs. Nil discards them.
	Logger *slog.Logger

	// Store receives commits. Nil creates a new empty store.
	Store *Store
}

// Monitor drives the periodic sample-and-commit cycle. It starts Idle;
// Start moves it to Running and Stop back to Idle. Both are idempotent.
type Monitor struct {
	sampler     sysmetrics.Sampler
	store       *Store
	interval    time.Duration
	stopTimeout time.Duration
	logger      *slog.Logger

	// tickMu is held across sample and commit, so ticker and manual ticks
	// commit in the order they sampled.
	tickMu sync.Mutex

	// mu guards the lifecycle fields and is held for the whole of every
	// commit, so Stop cannot return while a commit is in progress.
	mu      sync.Mutex
	running bool
	gen     uint64
	runCtx  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an idle Monitor that reads from sampler.
func New(sampler sysmetrics.Sampler, opts Options) *Monitor {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store := opts.Store
	if store == nil {
		store = NewStore()
	}

	return &Monitor{
		sampler:     sampler,
		store:       store,
		interval:    interval,
		stopTimeout: DefaultStopTimeout,
		logger:      logger,
	}
}

// Store returns the store the monitor commits into.
func (m *Monitor) Store() *Store {
	return m.store
}

// Interval returns the tick interval.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Running reports whether the monitor is ticking.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start begins ticking every Interval until Stop is called or ctx is
// cancelled. Cancelling ctx returns the monitor to Idle. The first tick
// happens one interval after Start. Calling Start on a running monitor does
// nothing.
func (m *Monitor) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("monitor: start: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		if m.runCtx.Err() == nil {
			return nil
		}
		// The previous run's context is gone but its loop has not yet
		// marked the monitor idle; retire it and start over.
		m.retire()
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.gen++
	m.running = true
	m.runCtx = runCtx
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(runCtx, m.gen, m.done)

	m.logger.Info("monitor started", "interval", m.interval)
	return nil
}

// Stop cancels the ticker and returns the monitor to Idle. Once Stop
// returns no further commit happens; a sample still in flight is
// discarded. Calling Stop on an idle monitor does nothing.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.retire()
	done := m.done
	m.mu.Unlock()

	select {
	case <-done:
		m.logger.Info("monitor stopped")
	case <-time.After(m.stopTimeout):
		m.logger.Warn("monitor: stop timed out waiting for sample", "timeout", m.stopTimeout)
	}
}

// retire moves the monitor to Idle and invalidates the current run so its
// in-flight sample is never committed. The caller holds m.mu.
func (m *Monitor) retire() {
	m.running = false
	m.gen++
	m.cancel()
}

// Tick runs one sample-and-commit cycle immediately, outside the ticker.
// It waits for a tick already in progress, so commits keep sample order.
// It returns false, committing nothing, when the monitor is idle or was
// stopped while sampling.
func (m *Monitor) Tick(ctx context.Context) bool {
	m.mu.Lock()
	running, gen := m.running, m.gen
	m.mu.Unlock()

	if !running {
		return false
	}
	return m.tick(ctx, gen)
}

// run is the ticker goroutine. Ticks are handled one at a time; the
// ticker drops ticks that fire while a slow sample is still running.
func (m *Monitor) run(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			if m.running && m.gen == gen {
				m.retire()
				m.logger.Info("monitor stopped", "reason", ctx.Err())
			}
			m.mu.Unlock()
			return
		case <-ticker.C:
			m.tick(ctx, gen)
		}
	}
}

func (m *Monitor) tick(ctx context.Context, gen uint64) bool {
	m.tickMu.Lock()
	defer m.tickMu.Unlock()

	if !m.current(gen) {
		return false
	}

	start := time.Now()
	reading := m.sample(ctx)
	elapsed := time.Since(start)

	if elapsed > m.interval {
		m.logger.Debug("monitor: sampling overran interval",
			"elapsed", elapsed, "interval", m.interval)
	}

	return m.commit(gen, reading)
}

// sample runs the four samplers concurrently and waits for all of them.
func (m *Monitor) sample(ctx context.Context) sysmetrics.Reading {
	var r sysmetrics.Reading
	g, gctx := errgroup.WithContext(ctx)

	g.Go(m.guard(sysmetrics.CPU, func() { r.CPU = m.sampler.CPU(gctx) }))
	g.Go(m.guard(sysmetrics.RAM, func() { r.RAM = m.sampler.RAM(gctx) }))
	g.Go(m.guard(sysmetrics.Disk, func() { r.Disk = m.sampler.Disk(gctx) }))
	g.Go(m.guard(sysmetrics.Battery, func() { r.Battery = m.sampler.Battery(gctx) }))

	// The guarded functions never return errors.
	_ = g.Wait()
	return r
}

// guard turns a sampler panic into a zero reading so one broken sampler
// cannot take the loop down.
func (m *Monitor) guard(kind sysmetrics.Kind, fn func()) func() error {
	return func() error {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("monitor: sampler panicked, reporting 0",
					"metric", kind.String(), "panic", rec)
			}
		}()
		fn()
		return nil
	}
}

// current reports whether gen is still the running generation.
func (m *Monitor) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running && m.gen == gen
}

// commit publishes reading if the run that sampled it is still current.
func (m *Monitor) commit(gen uint64, reading sysmetrics.Reading) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running || m.gen != gen {
		m.logger.Debug("monitor: discarding sample from stopped run")
		return false
	}

	snap := m.store.Commit(reading)

	m.logger.Debug("monitor tick committed",
		"seq", snap.Seq,
		"cpu", fmt.Sprintf("%.1f%%", snap.CPU.Current),
		"ram", fmt.Sprintf("%.1f%%", snap.RAM.Current),
		"disk", fmt.Sprintf("%.1f%%", snap.DiskUsage),
		"battery", fmt.Sprintf("%.1f%%", snap.BatteryPercentage),
		"charging", snap.BatteryIsCharging,
		"history_len", len(snap.CPU.History),
	)
	return true
}
