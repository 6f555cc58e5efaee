package sysmetrics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// CPUMode selects how CPU usage is derived from the kernel tick counters.
type CPUMode string

const (
	// CPUModeDelta reports usage over the interval since the previous
	// sample. The first sample has no baseline and reports the
	// since-boot figure instead.
	CPUModeDelta CPUMode = "delta"

	// CPUModeCumulative reports (user+system)/(user+system+idle) over the
	// raw since-boot counters, a figure that changes slowly on long-lived
	// hosts.
	CPUModeCumulative CPUMode = "cumulative"
)

// ParseCPUMode converts a config string into a CPUMode. The empty string
// selects CPUModeDelta.
func ParseCPUMode(s string) (CPUMode, error) {
	switch CPUMode(s) {
	case "", CPUModeDelta:
		return CPUModeDelta, nil
	case CPUModeCumulative:
		return CPUModeCumulative, nil
	default:
		return "", errors.New("sysmetrics: cpu mode must be 'delta' or 'cumulative'")
	}
}

// Config controls an OSSampler.
type Config struct {
	// CPUMode selects delta or cumulative CPU usage (default: delta).
	CPUMode CPUMode

	// DiskPath is any path on the volume to measure. Empty means the
	// user's home directory.
	DiskPath string

	// Logger receives sampling failures. Nil discards them.
	Logger *slog.Logger
}

// OSSampler implements Sampler against the running operating system.
type OSSampler struct {
	logger   *slog.Logger
	mode     CPUMode
	diskPath string
	failures *failureLog

	// mu guards the CPU baseline used in delta mode.
	mu      sync.Mutex
	prevCPU cpuTicks
	seeded  bool
	lastCPU float64

	// Overridable OS accessors for testing.
	cpuTimes      func(ctx context.Context) (cpuTicks, error)
	virtualMemory func(ctx context.Context) (memoryPages, error)
	diskSpace     func(ctx context.Context, path string) (diskSpace, error)
	powerSource   func(ctx context.Context) (BatteryState, error)
	hostInfo      func(ctx context.Context) (*host.InfoStat, error)
}

// NewOSSampler creates a sampler for the local machine.
func NewOSSampler(cfg Config) *OSSampler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mode := cfg.CPUMode
	if mode == "" {
		mode = CPUModeDelta
	}

	diskPath := cfg.DiskPath
	if diskPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			diskPath = home
		} else {
			diskPath = "/"
		}
	}

	return &OSSampler{
		logger:        logger,
		mode:          mode,
		diskPath:      diskPath,
		failures:      newFailureLog(logger),
		cpuTimes:      readCPUTicks,
		virtualMemory: readMemoryPages,
		diskSpace:     readDiskSpace,
		powerSource:   readPowerSource,
		hostInfo:      host.InfoWithContext,
	}
}

// Mode returns the configured CPU mode.
func (s *OSSampler) Mode() CPUMode {
	return s.mode
}

// DiskPath returns the path whose volume is measured.
func (s *OSSampler) DiskPath() string {
	return s.diskPath
}

// CPU returns CPU usage in percent, or 0 if the counters cannot be read.
func (s *OSSampler) CPU(ctx context.Context) float64 {
	ticks, err := s.cpuTimes(ctx)
	if err != nil {
		s.failures.record(CPU, err)
		return 0
	}
	s.failures.clear(CPU)

	if s.mode == CPUModeCumulative {
		return ticks.usage()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, seeded := s.prevCPU, s.seeded
	s.prevCPU, s.seeded = ticks, true

	if !seeded {
		s.lastCPU = ticks.usage()
		return s.lastCPU
	}

	delta, ok := ticks.since(prev)
	if !ok {
		// Counters went backwards (reset or wrap); start over from here.
		s.lastCPU = ticks.usage()
		return s.lastCPU
	}
	if delta.total() == 0 {
		return s.lastCPU
	}

	s.lastCPU = delta.usage()
	return s.lastCPU
}

// RAM returns memory usage in percent, or 0 on failure.
func (s *OSSampler) RAM(ctx context.Context) float64 {
	pages, err := s.virtualMemory(ctx)
	if err != nil {
		s.failures.record(RAM, err)
		return 0
	}
	pct, err := pages.usage()
	if err != nil {
		s.failures.record(RAM, err)
		return 0
	}
	s.failures.clear(RAM)
	return pct
}

// Disk returns usage of the volume holding DiskPath in percent, or 0 on
// failure.
func (s *OSSampler) Disk(ctx context.Context) float64 {
	space, err := s.diskSpace(ctx, s.diskPath)
	if err != nil {
		s.failures.record(Disk, err)
		return 0
	}
	pct, err := space.usage()
	if err != nil {
		s.failures.record(Disk, err)
		return 0
	}
	s.failures.clear(Disk)
	return pct
}

// Battery returns the state of the first power source, or the zero
// BatteryState when there is none or it cannot be read.
func (s *OSSampler) Battery(ctx context.Context) BatteryState {
	state, err := s.powerSource(ctx)
	if err != nil {
		s.failures.record(Battery, err)
		return BatteryState{}
	}
	s.failures.clear(Battery)
	return BatteryState{
		Percent:  Percent(state.Percent),
		Charging: state.Charging,
	}
}

// HostInfo collects static machine details. Fields that cannot be read are
// left empty; it never fails.
func (s *OSSampler) HostInfo(ctx context.Context) HostInfo {
	var info HostInfo

	if hi, err := s.hostInfo(ctx); err != nil {
		s.logger.Debug("sysmetrics: host info unavailable", "error", err)
	} else {
		info.Hostname = hi.Hostname
		info.OS = hi.OS
		info.Platform = hi.Platform
		info.PlatformVersion = hi.PlatformVersion
		info.KernelArch = hi.KernelArch
		info.Uptime = time.Duration(hi.Uptime) * time.Second
	}

	if pages, err := s.virtualMemory(ctx); err == nil {
		info.TotalMemory = pages.Total
	}
	if space, err := s.diskSpace(ctx, s.diskPath); err == nil {
		info.TotalDisk = space.Total
	}

	return info
}

// Compile-time interface compliance check.
var _ Sampler = (*OSSampler)(nil)
