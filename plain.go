package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

// lineReport is the JSON form of one tick in --plain/--once output.
type lineReport struct {
	Time     time.Time `json:"time"`
	Seq      uint64    `json:"seq"`
	CPU      float64   `json:"cpu"`
	RAM      float64   `json:"ram"`
	Disk     float64   `json:"disk"`
	Battery  float64   `json:"battery"`
	Charging bool      `json:"charging"`
}

func newLineReport(snap *monitor.Snapshot) lineReport {
	return lineReport{
		Time:     snap.Taken,
		Seq:      snap.Seq,
		CPU:      snap.CPU.Current,
		RAM:      snap.RAM.Current,
		Disk:     snap.DiskUsage,
		Battery:  snap.BatteryPercentage,
		Charging: snap.BatteryIsCharging,
	}
}

// formatLine renders a snapshot as one human-readable line.
func formatLine(snap *monitor.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(snap.Taken.Format("15:04:05"))
	fmt.Fprintf(&sb, " cpu %s ram %s disk %s battery %s",
		format.Percent(snap.CPU.Current),
		format.Percent(snap.RAM.Current),
		format.Percent(snap.DiskUsage),
		format.Percent(snap.BatteryPercentage),
	)
	if snap.BatteryIsCharging {
		sb.WriteString(" (charging)")
	}
	return sb.String()
}

func writeSnapshot(w io.Writer, snap *monitor.Snapshot, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(newLineReport(snap))
	}
	_, err := fmt.Fprintln(w, formatLine(snap))
	return err
}

// runPlain prints every committed snapshot until ctx is cancelled. A
// slow writer sees only the newest snapshot.
func runPlain(ctx context.Context, w io.Writer, store *monitor.Store, asJSON bool) error {
	updates, unsubscribe := store.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if err := writeSnapshot(w, snap, asJSON); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
		}
	}
}

// runOnce takes a single sample, prints it and stops the monitor.
func runOnce(ctx context.Context, w io.Writer, mon *monitor.Monitor, asJSON bool) error {
	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Stop()

	if !mon.Tick(ctx) {
		return errors.New("sample discarded: monitor stopped")
	}
	return writeSnapshot(w, mon.Store().Snapshot(), asJSON)
}
