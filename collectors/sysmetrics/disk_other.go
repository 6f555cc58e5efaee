//go:build !linux && !darwin && !freebsd

package sysmetrics

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// readDiskSpace falls back to gopsutil where statfs is unavailable.
func readDiskSpace(ctx context.Context, path string) (diskSpace, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return diskSpace{}, fmt.Errorf("sysmetrics: disk usage %s: %w", path, err)
	}
	return diskSpace{Total: u.Total, Free: u.Free}, nil
}
