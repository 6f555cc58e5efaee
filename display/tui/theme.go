package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
)

// ThemePreset defines a color scheme for the dashboard.
type ThemePreset struct {
	Name        string
	Description string
	Primary     lipgloss.Color
	Secondary   lipgloss.Color
	Muted       lipgloss.Color
	// Metric holds the chart color per metric.
	Metric [4]lipgloss.Color
	// Mono disables color in gauges and charts.
	Mono bool
}

// Predefined theme presets.
var (
	// DefaultTheme is the dark color theme.
	DefaultTheme = ThemePreset{
		Name:        "default",
		Description: "Dark theme with per-metric colors",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#06B6D4"),
		Muted:       lipgloss.Color("#6B7280"),
		Metric: [4]lipgloss.Color{
			lipgloss.Color("#3B82F6"), // cpu
			lipgloss.Color("#22C55E"), // ram
			lipgloss.Color("#F97316"), // disk
			lipgloss.Color("#EAB308"), // battery
		},
	}

	// MonoTheme renders without color, for terminals and logs that don't
	// take escapes well.
	MonoTheme = ThemePreset{
		Name:        "mono",
		Description: "No color",
		Mono:        true,
	}
)

var allPresets = []ThemePreset{DefaultTheme, MonoTheme}

// GetThemePreset returns the theme preset matching the given name.
// Unknown names return DefaultTheme.
func GetThemePreset(name string) ThemePreset {
	for _, p := range allPresets {
		if p.Name == name {
			return p
		}
	}
	return DefaultTheme
}

// metricColor returns the chart color for k, or "" in mono mode.
func (p ThemePreset) metricColor(k sysmetrics.Kind) lipgloss.Color {
	if p.Mono || int(k) >= len(p.Metric) {
		return ""
	}
	return p.Metric[k]
}

// styles holds the lipgloss styles derived from a preset.
type styles struct {
	header lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
}

func newStyles(p ThemePreset) styles {
	s := styles{
		header: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		title:  lipgloss.NewStyle().Bold(true),
		label:  lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle(),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1),
		footer: lipgloss.NewStyle().MarginTop(1),
	}
	if p.Mono {
		return s
	}

	s.header = s.header.Foreground(p.Primary)
	s.title = s.title.Foreground(p.Secondary)
	s.label = s.label.Foreground(p.Primary)
	s.muted = s.muted.Foreground(p.Muted)
	s.panel = s.panel.BorderForeground(p.Muted)
	s.footer = s.footer.Foreground(p.Muted)
	return s
}
