// Package tui renders the live host dashboard with bubbletea. The model
// subscribes to a monitor.Store and redraws on every committed tick.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

// Refresher triggers an immediate tick. *monitor.Monitor satisfies it.
type Refresher interface {
	Tick(ctx context.Context) bool
}

// Options configures a Model.
type Options struct {
	// Store is the source of snapshots. Required.
	Store *monitor.Store
	// Refresher handles the refresh key. Nil disables it.
	Refresher Refresher
	// Interval is the tick cadence, used to label the chart time axis.
	// Zero means one second.
	Interval time.Duration
	// Host is shown in the details panel.
	Host sysmetrics.HostInfo
	// Theme is a preset name ("default" or "mono").
	Theme string
	// Warning and Danger are gauge color thresholds.
	Warning float64
	Danger  float64
	// Zones tracks clickable panels. Nil creates a private manager.
	Zones *zone.Manager
}

// snapshotMsg carries a newly committed snapshot into Update.
type snapshotMsg struct {
	snap *monitor.Snapshot
}

// refreshMsg reports the result of a manual refresh.
type refreshMsg struct {
	committed bool
}

// Model is the top-level Bubbletea model for the hostpulse TUI.
type Model struct {
	store       *monitor.Store
	refresher   Refresher
	interval    time.Duration
	host        sysmetrics.HostInfo
	theme       ThemePreset
	styles      styles
	warning     float64
	danger      float64
	zones       *zone.Manager
	zonePrefix  string
	updates     <-chan *monitor.Snapshot
	unsubscribe func()
	help        help.Model

	snap     *monitor.Snapshot
	detail   sysmetrics.Kind
	showing  bool
	width    int
	height   int
	ready    bool
	lastNote string
}

// NewModel returns a Model subscribed to opts.Store. Call Close when the
// program exits to release the subscription.
func NewModel(opts Options) Model {
	theme := GetThemePreset(opts.Theme)

	zones := opts.Zones
	if zones == nil {
		zones = zone.New()
	}

	warning, danger := opts.Warning, opts.Danger
	if warning == 0 && danger == 0 {
		warning, danger = 70, 90
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}

	updates, unsubscribe := opts.Store.Subscribe()

	return Model{
		store:       opts.Store,
		refresher:   opts.Refresher,
		interval:    interval,
		host:        opts.Host,
		theme:       theme,
		styles:      newStyles(theme),
		warning:     warning,
		danger:      danger,
		zones:       zones,
		zonePrefix:  zones.NewPrefix(),
		updates:     updates,
		unsubscribe: unsubscribe,
		help:        help.New(),
		snap:        opts.Store.Snapshot(),
	}
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// waitForSnapshot blocks on the subscription and delivers the next snapshot.
func waitForSnapshot(ch <-chan *monitor.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap}
	}
}

func refreshCmd(r Refresher) tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{committed: r.Tick(context.Background())}
	}
}

// Init implements tea.Model. It starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = msg.snap
		return m, waitForSnapshot(m.updates)

	case refreshMsg:
		if !msg.committed {
			m.lastNote = "monitor idle, nothing refreshed"
		} else {
			m.lastNote = ""
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Back):
			m.showing = false
		case key.Matches(msg, keys.Refresh):
			if m.refresher != nil {
				return m, refreshCmd(m.refresher)
			}
		case key.Matches(msg, keys.CPU):
			m.openDetail(sysmetrics.CPU)
		case key.Matches(msg, keys.RAM):
			m.openDetail(sysmetrics.RAM)
		case key.Matches(msg, keys.Disk):
			m.openDetail(sysmetrics.Disk)
		case key.Matches(msg, keys.Battery):
			m.openDetail(sysmetrics.Battery)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || m.showing {
			return m, nil
		}
		for _, k := range sysmetrics.Kinds() {
			if m.zones.Get(m.zoneID(k)).InBounds(msg) {
				m.openDetail(k)
				break
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
	}

	return m, nil
}

func (m *Model) openDetail(k sysmetrics.Kind) {
	m.detail = k
	m.showing = true
}

func (m Model) zoneID(k sysmetrics.Kind) string {
	return m.zonePrefix + k.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	layout := LayoutForSize(DetectLayout(m.width), m.width, m.height)

	var body string
	if m.showing {
		body = m.renderDetail(layout)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderHost(),
			m.renderPanels(layout),
		)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
	return m.zones.Scan(view)
}

func (m Model) renderHeader() string {
	title := "hostpulse"
	if m.host.Hostname != "" {
		title += " · " + m.host.Hostname
	}
	if m.showing {
		title += " · " + m.detail.Title()
	}
	return m.styles.header.Render(fitWidth(title, m.width))
}

func (m Model) renderFooter() string {
	line := m.help.View(keys)
	if m.snap != nil && m.snap.Seq > 0 {
		line += m.styles.muted.Render(fmt.Sprintf("  tick %d, updated %s",
			m.snap.Seq, format.FormatTimeSince(m.snap.Taken)))
	}
	if m.lastNote != "" {
		line += m.styles.muted.Render("  " + m.lastNote)
	}
	return m.styles.footer.Render(fitLines(line, m.width))
}

// fitWidth truncates a single line to width cells, keeping escapes intact.
func fitWidth(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// fitLines applies fitWidth to every line of s.
func fitLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = fitWidth(l, width)
	}
	return strings.Join(lines, "\n")
}
