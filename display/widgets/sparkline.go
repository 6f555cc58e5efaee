package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls the appearance and behavior of a sparkline chart.
type SparklineConfig struct {
	// Data points to render (most recent last).
	Data []float64
	// Width is the number of characters to render. If 0, uses len(Data).
	Width int
	// Min is the minimum value for scaling. If Min == Max, auto-scale.
	Min float64
	// Max is the maximum value for scaling.
	Max float64
	// Color is the lipgloss color for the sparkline characters.
	Color lipgloss.Color
}

// PercentSparkline returns a config scaled to the fixed 0-100 range used by
// usage histories.
func PercentSparkline(data []float64, width int) SparklineConfig {
	return SparklineConfig{Data: data, Width: width, Min: 0, Max: 100}
}

// RenderSparkline renders a unicode sparkline chart from the given configuration.
// Fewer points than Width are right-aligned, so the newest sample always
// sits at the right edge.
func RenderSparkline(cfg SparklineConfig) string {
	width := cfg.Width
	if width <= 0 {
		width = len(cfg.Data)
	}
	if width == 0 {
		return ""
	}

	data := cfg.Data
	if width < len(data) {
		data = data[len(data)-width:]
	}

	minVal, maxVal := cfg.Min, cfg.Max
	if minVal == maxVal && len(data) > 0 {
		minVal, maxVal = data[0], data[0]
		for _, v := range data {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}

	runes := make([]rune, 0, len(data))
	for _, v := range data {
		if minVal == maxVal {
			runes = append(runes, sparkBlocks[len(sparkBlocks)/2])
			continue
		}
		normalized := (v - minVal) / (maxVal - minVal)
		normalized = math.Max(0, math.Min(1, normalized))
		idx := int(math.Round(normalized * float64(len(sparkBlocks)-1)))
		runes = append(runes, sparkBlocks[idx])
	}

	spark := string(runes)
	if cfg.Color != "" {
		spark = lipgloss.NewStyle().Foreground(cfg.Color).Render(spark)
	}
	return strings.Repeat(" ", width-len(data)) + spark
}
