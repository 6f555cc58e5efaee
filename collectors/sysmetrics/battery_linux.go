//go:build linux

package sysmetrics

import "context"

func readPowerSource(_ context.Context) (BatteryState, error) {
	return readPowerSupplies(sysfsPowerSupplyDir)
}
