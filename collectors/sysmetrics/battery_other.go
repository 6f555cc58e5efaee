//go:build !linux && !darwin

package sysmetrics

import "context"

func readPowerSource(_ context.Context) (BatteryState, error) {
	return BatteryState{}, ErrNoPowerSource
}
