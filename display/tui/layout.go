package tui

// LayoutSize represents a responsive breakpoint for terminal width.
type LayoutSize int

const (
	// LayoutCompact is used for terminals narrower than 60 characters.
	LayoutCompact LayoutSize = iota
	// LayoutNormal is used for terminals between 60 and 120 characters wide.
	LayoutNormal
	// LayoutWide is used for terminals wider than 120 characters.
	LayoutWide
)

// DetectLayout returns the appropriate LayoutSize for the given terminal width.
func DetectLayout(width int) LayoutSize {
	switch {
	case width < 60:
		return LayoutCompact
	case width <= 120:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// panelChrome is the border plus padding around a metric panel's content.
const panelChrome = 4

// percentSuffix is the width of the " 100.0%" gauge suffix.
const percentSuffix = 7

// LayoutConfig holds responsive layout values that adapt to terminal width.
type LayoutConfig struct {
	// Columns is the number of metric panels per row.
	Columns int
	// PanelWidth is the outer width of one metric panel.
	PanelWidth int
	// GaugeWidth is the character width for gauge bars.
	GaugeWidth int
	// SparkWidth is the sparkline width inside a panel.
	SparkWidth int
	// ShowSparklines controls whether sparkline charts are rendered.
	ShowSparklines bool
	// ChartHeight is the plot height of the detail chart.
	ChartHeight int
}

// LayoutForSize returns a LayoutConfig appropriate for the given size and
// terminal dimensions.
func LayoutForSize(size LayoutSize, width, height int) LayoutConfig {
	cfg := LayoutConfig{Columns: 2, ShowSparklines: true}
	switch size {
	case LayoutCompact:
		cfg.Columns = 1
		cfg.ShowSparklines = false
	case LayoutWide:
		cfg.Columns = 4
	}

	cfg.PanelWidth = width / cfg.Columns
	if cfg.PanelWidth < 20 {
		cfg.PanelWidth = 20
	}
	inner := cfg.PanelWidth - panelChrome

	cfg.GaugeWidth = max(inner-percentSuffix, 4)
	cfg.SparkWidth = min(inner, 60)

	// Header, axis lines, title and footer take about ten rows.
	cfg.ChartHeight = min(max(height-10, 4), 20)
	return cfg
}
