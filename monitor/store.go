package monitor

import (
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
)

// Store owns the per-metric histories and publishes immutable snapshots.
// There is a single writer (Commit) and any number of readers (Snapshot,
// Subscribe). Readers never take the write lock.
type Store struct {
	mu      sync.Mutex // held for the duration of one commit
	cpu     History
	ram     History
	disk    History
	battery History
	seq     uint64

	latest atomic.Pointer[Snapshot]

	subsMu sync.Mutex
	subs   map[uint64]chan *Snapshot
	nextID uint64

	now func() time.Time
}

// NewStore returns a store with empty histories.
func NewStore() *Store {
	s := &Store{
		subs: make(map[uint64]chan *Snapshot),
		now:  time.Now,
	}
	s.latest.Store(emptySnapshot())
	return s
}

// Snapshot returns the most recently published snapshot. It never blocks.
func (s *Store) Snapshot() *Snapshot {
	return s.latest.Load()
}

// Commit appends one tick's reading to every history and publishes the
// resulting snapshot. Values are clamped and rounded again here so a
// Sampler that misbehaves can never store out-of-range data.
func (s *Store) Commit(r sysmetrics.Reading) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cpu := sysmetrics.Percent(r.CPU)
	ram := sysmetrics.Percent(r.RAM)
	disk := sysmetrics.Percent(r.Disk)
	battery := sysmetrics.Percent(r.Battery.Percent)

	s.cpu.Append(cpu)
	s.ram.Append(ram)
	s.disk.Append(disk)
	s.battery.Append(battery)
	s.seq++

	snap := &Snapshot{
		Seq:               s.seq,
		Taken:             s.now(),
		CPU:               MetricSnapshot{Current: cpu, History: s.cpu.Values()},
		RAM:               MetricSnapshot{Current: ram, History: s.ram.Values()},
		Disk:              MetricSnapshot{Current: disk, History: s.disk.Values()},
		Battery:           MetricSnapshot{Current: battery, History: s.battery.Values()},
		DiskUsage:         disk,
		BatteryPercentage: battery,
		BatteryIsCharging: r.Battery.Charging,
	}
	s.latest.Store(snap)
	s.notify(snap)

	return snap
}

// Subscribe returns a channel that receives each newly published snapshot.
// The channel holds at most one pending snapshot: a reader that falls
// behind skips straight to the newest one, and the writer never waits on
// readers. Call the returned function to unsubscribe; it closes the
// channel.
func (s *Store) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			close(ch)
			s.subsMu.Unlock()
		})
	}
	return ch, cancel
}

// notify delivers snap to every subscriber, replacing any snapshot the
// subscriber has not read yet. Called with s.mu held, so deliveries are
// ordered by commit.
func (s *Store) notify(snap *Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Drop the stale pending snapshot and retry. Only this goroutine
		// sends, so the buffer cannot refill in between.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
