// Package config provides configuration parsing for hostpulse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the hostpulse configuration.
type Config struct {
	// Monitor holds sampling settings.
	Monitor MonitorConfig `yaml:"monitor"`

	// Log holds logging settings.
	Log LogConfig `yaml:"log"`

	// Display holds TUI rendering settings.
	Display DisplayConfig `yaml:"display"`

	// Metrics holds Prometheus exporter settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// MonitorConfig holds sampling settings.
type MonitorConfig struct {
	// Interval is a duration string (e.g. "1s", "500ms") between ticks.
	Interval string `yaml:"interval"`
	// CPUMode is "delta" or "cumulative".
	CPUMode string `yaml:"cpu_mode"`
	// DiskPath is a path on the volume to measure. Empty means $HOME.
	DiskPath string `yaml:"disk_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File is the log output path. A leading ~ expands to $HOME.
	File string `yaml:"file"`
}

// DisplayConfig holds TUI rendering settings.
type DisplayConfig struct {
	// Theme selects the color theme: "default" or "mono".
	Theme string `yaml:"theme"`
	// Warning is the gauge percentage at which bars turn yellow.
	Warning float64 `yaml:"warning"`
	// Danger is the gauge percentage at which bars turn red.
	Danger float64 `yaml:"danger"`
}

// MetricsConfig holds Prometheus exporter settings.
type MetricsConfig struct {
	// Listen is the HTTP listen address for /metrics. Empty disables it.
	Listen string `yaml:"listen"`
}

// Environment variables that override file settings.
const (
	EnvInterval      = "HOSTPULSE_INTERVAL"
	EnvLogLevel      = "HOSTPULSE_LOG_LEVEL"
	EnvMetricsListen = "HOSTPULSE_METRICS_LISTEN"
)

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Monitor: MonitorConfig{
			Interval: "1s",
			CPUMode:  "delta",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(xdgStateHome(home), "hostpulse", "hostpulse.log"),
		},
		Display: DisplayConfig{
			Theme:   "default",
			Warning: 70,
			Danger:  90,
		},
	}
}

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/hostpulse/config.yaml
//  2. ~/.config/hostpulse/config.yaml
//
// If no file exists, it returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadConfig(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadConfig loads configuration from a YAML file, merging with defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	cfg.Log.File = expandHome(cfg.Log.File)
	return cfg, nil
}

// Validate checks the configuration for logical consistency.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Monitor.Interval)
	if err != nil {
		return fmt.Errorf("monitor.interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("monitor.interval must be positive, got %q", c.Monitor.Interval)
	}

	switch c.Monitor.CPUMode {
	case "", "delta", "cumulative":
	default:
		return fmt.Errorf("monitor.cpu_mode must be 'delta' or 'cumulative', got %q", c.Monitor.CPUMode)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	switch c.Display.Theme {
	case "default", "mono":
	default:
		return fmt.Errorf("display.theme must be 'default' or 'mono', got %q", c.Display.Theme)
	}

	if c.Display.Warning < 0 || c.Display.Danger > 100 || c.Display.Warning > c.Display.Danger {
		return fmt.Errorf("display thresholds must satisfy 0 <= warning <= danger <= 100, got %v/%v",
			c.Display.Warning, c.Display.Danger)
	}

	return nil
}

// Interval returns the parsed monitor interval, or one second if it does
// not parse.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.Monitor.Interval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvInterval); v != "" {
		cfg.Monitor.Interval = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvMetricsListen); v != "" {
		cfg.Metrics.Listen = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()

	xdg := xdgConfigHome(home)
	paths := []string{filepath.Join(xdg, "hostpulse", "config.yaml")}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "hostpulse", "config.yaml"))
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
