//go:build darwin

package sysmetrics

import (
	"context"
	"fmt"
	"os/exec"
)

// readPowerSource asks pmset for the power source list. pmset reads the
// same IOKit power source table as the menu bar battery indicator.
func readPowerSource(ctx context.Context) (BatteryState, error) {
	out, err := exec.CommandContext(ctx, "pmset", "-g", "batt").Output()
	if err != nil {
		return BatteryState{}, fmt.Errorf("sysmetrics: pmset -g batt: %w", err)
	}
	return parsePmset(out)
}
