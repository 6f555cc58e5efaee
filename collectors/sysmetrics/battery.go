package sysmetrics

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoPowerSource is returned by the platform readers when the machine has
// no battery (desktops, most servers and VMs).
var ErrNoPowerSource = errors.New("sysmetrics: no power source present")

// sysfsPowerSupplyDir is where Linux exposes power supplies.
const sysfsPowerSupplyDir = "/sys/class/power_supply"

// readPowerSupplies scans a sysfs power_supply directory and returns the
// first system battery found. Peripheral batteries (scope "Device", e.g. a
// wireless mouse) are skipped.
func readPowerSupplies(root string) (BatteryState, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return BatteryState{}, ErrNoPowerSource
		}
		return BatteryState{}, fmt.Errorf("sysmetrics: read %s: %w", root, err)
	}

	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if readSysfsString(dir, "type") != "Battery" {
			continue
		}
		if readSysfsString(dir, "scope") == "Device" {
			continue
		}
		pct, err := sysfsCapacity(dir)
		if err != nil {
			return BatteryState{}, err
		}
		return BatteryState{
			Percent:  pct,
			Charging: readSysfsString(dir, "status") == "Charging",
		}, nil
	}

	return BatteryState{}, ErrNoPowerSource
}

// sysfsCapacity computes current/max*100 from energy or charge counters,
// falling back to the kernel's own capacity percentage.
func sysfsCapacity(dir string) (float64, error) {
	pairs := [][2]string{
		{"energy_now", "energy_full"},
		{"charge_now", "charge_full"},
	}
	for _, p := range pairs {
		now, errNow := readSysfsUint(dir, p[0])
		full, errFull := readSysfsUint(dir, p[1])
		if errNow == nil && errFull == nil && full > 0 {
			return Ratio(float64(now), float64(full)), nil
		}
	}

	capacity, err := readSysfsUint(dir, "capacity")
	if err != nil {
		return 0, fmt.Errorf("sysmetrics: battery %s: no capacity counters: %w", filepath.Base(dir), err)
	}
	return Percent(float64(capacity)), nil
}

func readSysfsString(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readSysfsUint(dir, name string) (uint64, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}

// pmsetBatteryLine matches the per-source line of `pmset -g batt`, e.g.
//
//	-InternalBattery-0 (id=4653155)	85%; charging; 1:20 remaining present: true
var pmsetBatteryLine = regexp.MustCompile(`(\d+(?:\.\d+)?)%;\s*([^;]+);`)

// parsePmset extracts the first power source from `pmset -g batt` output.
func parsePmset(out []byte) (BatteryState, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "-") {
			continue
		}
		m := pmsetBatteryLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return BatteryState{}, fmt.Errorf("sysmetrics: parse pmset percentage %q: %w", m[1], err)
		}
		state := strings.TrimSpace(m[2])
		return BatteryState{
			Percent:  Percent(pct),
			Charging: state == "charging" || state == "finishing charge",
		}, nil
	}
	return BatteryState{}, ErrNoPowerSource
}
