package widgets

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ChartConfig controls a multi-row area chart on a fixed 0-100 scale.
type ChartConfig struct {
	// Data points, oldest first.
	Data []float64
	// Slots is the number of samples the x axis spans. Fewer points are
	// drawn right-aligned; 0 means len(Data).
	Slots int
	// Width of the plot area in columns, excluding the y axis.
	Width int
	// Height of the plot area in rows (minimum 2).
	Height int
	// Span is the time covered by Slots, used for the x-axis caption.
	Span time.Duration
	// Color of the filled area. Empty means unstyled.
	Color lipgloss.Color
}

// yAxisWidth is the width of "100 ┤".
const yAxisWidth = 5

// RenderChart renders an area chart with y-axis labels at 0, 50 and 100
// and an x axis running from -Span on the left to "now" on the right.
func RenderChart(cfg ChartConfig) string {
	width := cfg.Width
	if width <= 0 {
		width = 60
	}
	height := cfg.Height
	if height < 2 {
		height = 2
	}
	slots := cfg.Slots
	if slots < len(cfg.Data) {
		slots = len(cfg.Data)
	}

	// columns[i] is the value drawn in column i, NaN for an empty slot.
	columns := make([]float64, width)
	offset := slots - len(cfg.Data)
	for i := range columns {
		columns[i] = math.NaN()
		if slots == 0 {
			continue
		}
		slot := i * slots / width
		if slot >= offset {
			columns[i] = clampPercent(cfg.Data[slot-offset])
		}
	}

	var sb strings.Builder
	mid := (height - 1) / 2
	for row := height - 1; row >= 0; row-- {
		switch {
		case row == height-1:
			sb.WriteString("100 ┤")
		case row == mid && height > 2:
			sb.WriteString(" 50 ┤")
		default:
			sb.WriteString("    │")
		}

		cells := make([]rune, width)
		for i, v := range columns {
			cells[i] = areaCell(v, row, height)
		}
		if cfg.Color != "" {
			sb.WriteString(lipgloss.NewStyle().Foreground(cfg.Color).Render(string(cells)))
		} else {
			sb.WriteString(string(cells))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  0 └")
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", yAxisWidth))
	sb.WriteString(timeAxis(cfg.Span, width))
	return sb.String()
}

// areaCell returns the glyph for value v in the given row, counted from
// the bottom. Each row holds eight vertical steps.
func areaCell(v float64, row, height int) rune {
	if math.IsNaN(v) {
		return ' '
	}
	level := int(math.Round(v / 100 * float64(height*8)))
	fill := level - row*8
	switch {
	case fill >= 8:
		return sparkBlocks[len(sparkBlocks)-1]
	case fill <= 0:
		return ' '
	default:
		return sparkBlocks[fill-1]
	}
}

func timeAxis(span time.Duration, width int) string {
	left := ""
	if span > 0 {
		left = fmt.Sprintf("-%ds", int(span.Seconds()))
	}
	const right = "now"
	gap := width - len(left) - len(right)
	if gap < 1 {
		return right
	}
	return left + strings.Repeat(" ", gap) + right
}
