package sysmetrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// cpuTicks holds the cumulative user, system, and idle time since boot,
// aggregated over all cores.
type cpuTicks struct {
	User   float64
	System float64
	Idle   float64
}

func (t cpuTicks) busy() float64  { return t.User + t.System }
func (t cpuTicks) total() float64 { return t.User + t.System + t.Idle }

// usage returns (user+system)/(user+system+idle) as a percentage.
func (t cpuTicks) usage() float64 {
	return Ratio(t.busy(), t.total())
}

// since returns the counter difference t - prev. ok is false when any
// counter went backwards.
func (t cpuTicks) since(prev cpuTicks) (cpuTicks, bool) {
	d := cpuTicks{
		User:   t.User - prev.User,
		System: t.System - prev.System,
		Idle:   t.Idle - prev.Idle,
	}
	if d.User < 0 || d.System < 0 || d.Idle < 0 {
		return cpuTicks{}, false
	}
	return d, true
}

// readCPUTicks reads the aggregate tick counters through gopsutil.
func readCPUTicks(ctx context.Context) (cpuTicks, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return cpuTicks{}, fmt.Errorf("sysmetrics: read cpu times: %w", err)
	}
	if len(times) == 0 {
		return cpuTicks{}, errors.New("sysmetrics: read cpu times: no aggregate entry")
	}
	t := times[0]
	return cpuTicks{
		User:   t.User,
		System: t.System,
		Idle:   t.Idle,
	}, nil
}
