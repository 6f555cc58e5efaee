package sysmetrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// memoryPages holds the page-class byte counts used for RAM usage.
// Wired is only reported on BSD-derived kernels and is zero elsewhere.
type memoryPages struct {
	Active   uint64
	Inactive uint64
	Wired    uint64
	Free     uint64

	// Total is the physical memory size, shown in host details only.
	Total uint64
}

var errNoMemory = errors.New("sysmetrics: memory statistics report zero pages")

// usage returns (active+inactive+wired) / (active+inactive+wired+free).
func (p memoryPages) usage() (float64, error) {
	used := float64(p.Active) + float64(p.Inactive) + float64(p.Wired)
	total := used + float64(p.Free)
	if total <= 0 {
		return 0, errNoMemory
	}
	return Ratio(used, total), nil
}

// readMemoryPages reads virtual memory statistics through gopsutil.
func readMemoryPages(ctx context.Context) (memoryPages, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return memoryPages{}, fmt.Errorf("sysmetrics: read virtual memory: %w", err)
	}
	return memoryPages{
		Active:   vm.Active,
		Inactive: vm.Inactive,
		Wired:    vm.Wired,
		Free:     vm.Free,
		Total:    vm.Total,
	}, nil
}
