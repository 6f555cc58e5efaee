package main

import (
	"encoding/json"
	"net/http"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

// HealthStatus is the /healthz response body.
type HealthStatus struct {
	Status   string    `json:"status"`
	Seq      uint64    `json:"seq"`
	LastTick time.Time `json:"last_tick,omitzero"`
	Age      string    `json:"age,omitempty"`
	Interval string    `json:"interval"`
}

// Health states.
const (
	healthOK       = "ok"
	healthStarting = "starting"
	healthStale    = "stale"
	healthStopped  = "stopped"
)

// checkHealth reports the monitor's state at now. The monitor is
// considered stale once the last tick is older than twice the interval.
func checkHealth(mon *monitor.Monitor, now time.Time) HealthStatus {
	snap := mon.Store().Snapshot()
	status := HealthStatus{
		Seq:      snap.Seq,
		LastTick: snap.Taken,
		Interval: mon.Interval().String(),
	}

	switch {
	case !mon.Running():
		status.Status = healthStopped
	case snap.Seq == 0:
		status.Status = healthStarting
	default:
		age := now.Sub(snap.Taken)
		status.Age = age.Round(time.Millisecond).String()
		status.Status = healthOK
		if age > 2*mon.Interval() {
			status.Status = healthStale
		}
	}
	return status
}

// healthHandler serves checkHealth as JSON. Stopped and stale monitors
// answer 503 so load balancers and probes can act on the status code.
func healthHandler(mon *monitor.Monitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := checkHealth(mon, time.Now())

		code := http.StatusOK
		if status.Status == healthStopped || status.Status == healthStale {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	})
}
