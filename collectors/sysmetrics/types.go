// Package sysmetrics samples local host metrics (CPU, RAM, Disk, Battery)
// and normalizes each reading into a bounded percentage with one decimal of
// precision. Every sampler call is synchronous, may block on the kernel, and
// never fails: a reading that cannot be taken degrades to zero.
package sysmetrics

import (
	"context"
	"time"
)

// Kind identifies one sampled metric.
type Kind int

const (
	CPU Kind = iota
	RAM
	Disk
	Battery
	kindCount // sentinel
)

var kindNames = [...]string{
	CPU:     "cpu",
	RAM:     "ram",
	Disk:    "disk",
	Battery: "battery",
}

// String returns the lowercase metric name used in logs and exported labels.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Title returns the display title ("CPU", "RAM", "Disk", "Battery").
func (k Kind) Title() string {
	switch k {
	case CPU:
		return "CPU"
	case RAM:
		return "RAM"
	case Disk:
		return "Disk"
	case Battery:
		return "Battery"
	default:
		return "Unknown"
	}
}

// Kinds returns all metric kinds in display order.
func Kinds() []Kind {
	return []Kind{CPU, RAM, Disk, Battery}
}

// BatteryState is the charge level of the first power source and whether
// it is currently charging. The zero value means "no battery".
type BatteryState struct {
	// Percent is the charge level (0-100).
	Percent float64 `json:"percent"`

	// Charging is true while the source is being charged.
	Charging bool `json:"charging"`
}

// Reading holds one sample of every metric, taken during a single tick.
type Reading struct {
	CPU     float64      `json:"cpu"`
	RAM     float64      `json:"ram"`
	Disk    float64      `json:"disk"`
	Battery BatteryState `json:"battery"`
}

// Value returns the percentage for the given kind.
func (r Reading) Value(k Kind) float64 {
	switch k {
	case CPU:
		return r.CPU
	case RAM:
		return r.RAM
	case Disk:
		return r.Disk
	case Battery:
		return r.Battery.Percent
	default:
		return 0
	}
}

// Sampler returns one current reading per metric kind. Implementations
// must be safe to call from multiple goroutines at once and must never
// panic; failures are reported as a zero value.
type Sampler interface {
	CPU(ctx context.Context) float64
	RAM(ctx context.Context) float64
	Disk(ctx context.Context) float64
	Battery(ctx context.Context) BatteryState
}

// HostInfo describes the machine the monitor runs on. It is collected once
// at startup for the system information panel.
type HostInfo struct {
	Hostname        string        `json:"hostname"`
	OS              string        `json:"os"`
	Platform        string        `json:"platform"`
	PlatformVersion string        `json:"platform_version"`
	KernelArch      string        `json:"kernel_arch"`
	Uptime          time.Duration `json:"uptime"`

	// TotalDisk is the size in bytes of the monitored volume.
	TotalDisk uint64 `json:"total_disk"`

	// TotalMemory is the physical memory size in bytes.
	TotalMemory uint64 `json:"total_memory"`
}
