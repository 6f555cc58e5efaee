package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

// renderPanels lays the four metric panels out in layout.Columns columns.
// Each panel is a click zone that opens its detail chart.
func (m Model) renderPanels(layout LayoutConfig) string {
	var rows []string
	var row []string
	for _, k := range sysmetrics.Kinds() {
		panel := m.renderPanel(k, layout)
		row = append(row, m.zones.Mark(m.zoneID(k), panel))
		if len(row) == layout.Columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderPanel(k sysmetrics.Kind, layout LayoutConfig) string {
	metric := m.snap.Metric(k)

	label := widgets.GaugeLabel(k.Title(), metric.Current)
	if k == sysmetrics.Battery {
		label += " " + widgets.BatteryGlyph(metric.Current, m.snap.BatteryIsCharging)
	}

	lines := []string{
		m.styles.title.Render(label),
		widgets.RenderGauge(widgets.GaugeConfig{
			Width:            layout.GaugeWidth,
			Percent:          metric.Current,
			ShowPercent:      true,
			ThresholdWarning: m.warning,
			ThresholdDanger:  m.danger,
			Mono:             m.theme.Mono,
		}),
	}
	if layout.ShowSparklines {
		spark := widgets.PercentSparkline(metric.History, layout.SparkWidth)
		spark.Color = m.theme.metricColor(k)
		lines = append(lines, widgets.RenderSparkline(spark))
	}

	inner := layout.PanelWidth - panelChrome
	return m.styles.panel.Width(inner + 2).Render(fitLines(strings.Join(lines, "\n"), inner))
}

// hostnameWidth caps long FQDNs in the host panel.
const hostnameWidth = 40

// renderHost renders the static machine details panel.
func (m Model) renderHost() string {
	h := m.host
	rows := []struct{ label, value string }{
		{"Host", format.TruncateWithEllipsis(h.Hostname, hostnameWidth)},
		{"OS", strings.TrimSpace(h.Platform + " " + h.PlatformVersion)},
		{"Arch", h.KernelArch},
		{"Uptime", uptime(h.Uptime)},
		{"Memory", format.Bytes(h.TotalMemory)},
		{"Disk", format.Bytes(h.TotalDisk)},
	}

	var lines []string
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		lines = append(lines, m.styles.label.Render(fmt.Sprintf("%-7s", r.label))+" "+r.value)
	}
	if len(lines) == 0 {
		return ""
	}
	return fitLines(strings.Join(lines, "\n"), m.width) + "\n"
}

func uptime(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return format.FormatDuration(d)
}

// renderDetail renders the full-width chart of one metric's history.
func (m Model) renderDetail(layout LayoutConfig) string {
	metric := m.snap.Metric(m.detail)

	chart := widgets.RenderChart(widgets.ChartConfig{
		Data:   metric.History,
		Slots:  monitor.HistoryCapacity,
		Width:  max(m.width-6, 10),
		Height: layout.ChartHeight,
		Span:   time.Duration(monitor.HistoryCapacity) * m.interval,
		Color:  m.theme.metricColor(m.detail),
	})

	lo, hi, avg := stats(metric.History)
	summary := fmt.Sprintf("now %s  min %s  max %s  avg %s  (%d samples)",
		format.Percent(metric.Current), format.Percent(lo), format.Percent(hi),
		format.Percent(avg), len(metric.History))
	if m.detail == sysmetrics.Battery && m.snap.BatteryIsCharging {
		summary += "  charging"
	}

	return fitLines(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(m.detail.Title()+" usage"),
		chart,
		m.styles.muted.Render(summary),
	), m.width)
}

// stats returns the min, max and mean of values, all 0 when empty.
func stats(values []float64) (lo, hi, avg float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	lo, hi = values[0], values[0]
	var sum float64
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return lo, hi, sysmetrics.Round1(sum / float64(len(values)))
}
