//go:build linux || darwin || freebsd

package sysmetrics

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// readDiskSpace calls statfs on path. Free counts blocks available to
// unprivileged users, matching what file managers report.
func readDiskSpace(_ context.Context, path string) (diskSpace, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return diskSpace{}, fmt.Errorf("sysmetrics: statfs %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	return diskSpace{
		Total: uint64(st.Blocks) * bsize,
		Free:  uint64(st.Bavail) * bsize,
	}, nil
}
