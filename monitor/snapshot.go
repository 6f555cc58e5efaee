package monitor

import (
	"time"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
)

// MetricSnapshot is the state of one metric at commit time.
type MetricSnapshot struct {
	// Current is the latest committed value (0 before the first tick).
	Current float64 `json:"current"`

	// History holds up to HistoryCapacity samples, most recent last.
	History []float64 `json:"history"`
}

// Snapshot is an immutable view of every metric as of one commit. Readers
// must not modify the slices it holds.
type Snapshot struct {
	// Seq counts commits; 0 is the empty initial snapshot.
	Seq uint64 `json:"seq"`

	// Taken is when the commit happened (zero before the first tick).
	Taken time.Time `json:"taken"`

	CPU     MetricSnapshot `json:"cpu"`
	RAM     MetricSnapshot `json:"ram"`
	Disk    MetricSnapshot `json:"disk"`
	Battery MetricSnapshot `json:"battery"`

	// DiskUsage mirrors Disk.Current.
	DiskUsage float64 `json:"disk_usage"`

	// BatteryPercentage mirrors Battery.Current.
	BatteryPercentage float64 `json:"battery_percentage"`

	// BatteryIsCharging is the charging flag from the latest tick. It has
	// no history.
	BatteryIsCharging bool `json:"battery_is_charging"`
}

// emptySnapshot is published before the first commit.
func emptySnapshot() *Snapshot {
	return &Snapshot{
		CPU:     MetricSnapshot{History: []float64{}},
		RAM:     MetricSnapshot{History: []float64{}},
		Disk:    MetricSnapshot{History: []float64{}},
		Battery: MetricSnapshot{History: []float64{}},
	}
}

// Metric returns the snapshot of the given kind.
func (s *Snapshot) Metric(k sysmetrics.Kind) MetricSnapshot {
	switch k {
	case sysmetrics.CPU:
		return s.CPU
	case sysmetrics.RAM:
		return s.RAM
	case sysmetrics.Disk:
		return s.Disk
	case sysmetrics.Battery:
		return s.Battery
	default:
		return MetricSnapshot{}
	}
}

// CPUHistory, RAMHistory, DiskHistory and BatteryHistory return each
// metric's history, oldest first. The slices are shared and must not be
// modified.
func (s *Snapshot) CPUHistory() []float64     { return s.CPU.History }
func (s *Snapshot) RAMHistory() []float64     { return s.RAM.History }
func (s *Snapshot) DiskHistory() []float64    { return s.Disk.History }
func (s *Snapshot) BatteryHistory() []float64 { return s.Battery.History }
