package sysmetrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeSupply creates a fake /sys/class/power_supply/<name> entry.
func writeSupply(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadPowerSupplies(t *testing.T) {
	tests := []struct {
		name     string
		supplies map[string]map[string]string
		want     BatteryState
		wantErr  error
	}{
		{
			name:     "no supplies directory entries",
			supplies: nil,
			wantErr:  ErrNoPowerSource,
		},
		{
			name: "mains only (desktop)",
			supplies: map[string]map[string]string{
				"AC": {"type": "Mains", "online": "1"},
			},
			wantErr: ErrNoPowerSource,
		},
		{
			name: "energy counters",
			supplies: map[string]map[string]string{
				"AC":   {"type": "Mains"},
				"BAT0": {"type": "Battery", "status": "Charging", "energy_now": "44000000", "energy_full": "50000000"},
			},
			want: BatteryState{Percent: 88, Charging: true},
		},
		{
			name: "charge counters discharging",
			supplies: map[string]map[string]string{
				"BAT0": {"type": "Battery", "status": "Discharging", "charge_now": "1234", "charge_full": "10000"},
			},
			want: BatteryState{Percent: 12.3, Charging: false},
		},
		{
			name: "capacity fallback",
			supplies: map[string]map[string]string{
				"BAT1": {"type": "Battery", "status": "Full", "capacity": "100"},
			},
			want: BatteryState{Percent: 100, Charging: false},
		},
		{
			name: "peripheral battery skipped",
			supplies: map[string]map[string]string{
				"hidpp_battery_0": {"type": "Battery", "scope": "Device", "capacity": "5"},
				"macsmc-battery":  {"type": "Battery", "status": "Charging", "capacity": "64"},
			},
			want: BatteryState{Percent: 64, Charging: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, files := range tt.supplies {
				writeSupply(t, root, name, files)
			}

			got, err := readPowerSupplies(root)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("readPowerSupplies() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadPowerSupplies_MissingRoot(t *testing.T) {
	_, err := readPowerSupplies(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrNoPowerSource) {
		t.Errorf("err = %v, want ErrNoPowerSource", err)
	}
}

func TestReadPowerSupplies_NoCounters(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "status": "Unknown"})

	_, err := readPowerSupplies(root)
	if err == nil || errors.Is(err, ErrNoPowerSource) {
		t.Errorf("err = %v, want a counter read error", err)
	}
}

func TestParsePmset(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    BatteryState
		wantErr bool
	}{
		{
			name: "charging",
			out: "Now drawing from 'AC Power'\n" +
				" -InternalBattery-0 (id=4653155)\t85%; charging; 1:20 remaining present: true\n",
			want: BatteryState{Percent: 85, Charging: true},
		},
		{
			name: "discharging",
			out: "Now drawing from 'Battery Power'\n" +
				" -InternalBattery-0 (id=4653155)\t42%; discharging; 3:10 remaining present: true\n",
			want: BatteryState{Percent: 42, Charging: false},
		},
		{
			name: "charged on AC",
			out: "Now drawing from 'AC Power'\n" +
				" -InternalBattery-0 (id=4653155)\t100%; charged; 0:00 remaining present: true\n",
			want: BatteryState{Percent: 100, Charging: false},
		},
		{
			name: "finishing charge",
			out:  " -InternalBattery-0 (id=1)\t99%; finishing charge; 0:05 remaining present: true\n",
			want: BatteryState{Percent: 99, Charging: true},
		},
		{
			name:    "desktop mac",
			out:     "Now drawing from 'AC Power'\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePmset([]byte(tt.out))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNoPowerSource) {
					t.Errorf("err = %v, want ErrNoPowerSource", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("parsePmset() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
