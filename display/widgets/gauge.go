package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GaugeConfig controls the appearance and behavior of a horizontal bar gauge.
type GaugeConfig struct {
	// Width is the total character width of the gauge bar.
	Width int
	// Percent is the value from 0 to 100.
	Percent float64
	// Label is optional text shown above the bar.
	Label string
	// ShowPercent controls whether "XX.X%" is shown to the right.
	ShowPercent bool
	// ThresholdWarning is the % at which color changes to yellow (default: 70).
	ThresholdWarning float64
	// ThresholdDanger is the % at which color changes to red (default: 90).
	ThresholdDanger float64
	// Mono disables color.
	Mono bool
}

const (
	gaugeFilled = "█"
	gaugeEmpty  = "░"
)

// Threshold colors shared by gauges and charts.
var (
	ColorOK      = lipgloss.Color("#22C55E")
	ColorWarning = lipgloss.Color("#EAB308")
	ColorDanger  = lipgloss.Color("#EF4444")
)

// DefaultGaugeConfig returns a GaugeConfig with sensible defaults.
func DefaultGaugeConfig() GaugeConfig {
	return GaugeConfig{
		Width:            20,
		ShowPercent:      true,
		ThresholdWarning: 70,
		ThresholdDanger:  90,
	}
}

// ThresholdColor returns the color for percent given warning and danger
// thresholds. Zero thresholds fall back to 70 and 90.
func ThresholdColor(percent, warning, danger float64) lipgloss.Color {
	if warning == 0 && danger == 0 {
		warning, danger = 70, 90
	}
	switch {
	case percent >= danger:
		return ColorDanger
	case percent >= warning:
		return ColorWarning
	default:
		return ColorOK
	}
}

// GaugeLabel formats the caption above a usage gauge, e.g. "CPU - 23%".
// The percentage is truncated, matching how the bar is read at a glance.
func GaugeLabel(title string, percent float64) string {
	return fmt.Sprintf("%s - %d%%", title, int(clampPercent(percent)))
}

// RenderGauge renders a horizontal bar gauge with optional label and percentage.
// Format:
//
//	[Label]
//	████████░░░░ [XX.X%]
func RenderGauge(cfg GaugeConfig) string {
	percent := clampPercent(cfg.Percent)

	width := cfg.Width
	if width <= 0 {
		width = 20
	}

	filledCount := int(math.Round(percent / 100.0 * float64(width)))
	filled := strings.Repeat(gaugeFilled, filledCount)
	empty := strings.Repeat(gaugeEmpty, width-filledCount)

	if !cfg.Mono {
		color := ThresholdColor(percent, cfg.ThresholdWarning, cfg.ThresholdDanger)
		filled = lipgloss.NewStyle().Foreground(color).Render(filled)
	}

	var sb strings.Builder
	if cfg.Label != "" {
		sb.WriteString(cfg.Label)
		sb.WriteString("\n")
	}
	sb.WriteString(filled)
	sb.WriteString(empty)
	if cfg.ShowPercent {
		fmt.Fprintf(&sb, " %5.1f%%", percent)
	}
	return sb.String()
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
