package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

// isQuitCmd executes a tea.Cmd and returns true if it produces a tea.QuitMsg.
func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	msg := cmd()
	_, ok := msg.(tea.QuitMsg)
	return ok
}

type fakeRefresher struct {
	calls  int
	result bool
}

func (f *fakeRefresher) Tick(context.Context) bool {
	f.calls++
	return f.result
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleReading() sysmetrics.Reading {
	return sysmetrics.Reading{
		CPU:     23.45,
		RAM:     61.0,
		Disk:    72.3,
		Battery: sysmetrics.BatteryState{Percent: 88.0, Charging: true},
	}
}

// newTestModel returns a sized model over a store holding one tick.
func newTestModel(t *testing.T, opts Options) (Model, *monitor.Store) {
	t.Helper()
	if opts.Store == nil {
		opts.Store = monitor.NewStore()
	}
	opts.Store.Commit(sampleReading())

	m := NewModel(opts)
	t.Cleanup(m.Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), opts.Store
}

func TestNewModel(t *testing.T) {
	store := monitor.NewStore()
	m := NewModel(Options{Store: store})
	defer m.Close()

	if m.ready {
		t.Error("expected ready to be false")
	}
	if m.showing {
		t.Error("expected dashboard view initially")
	}
	if m.snap == nil || m.snap.Seq != 0 {
		t.Errorf("expected empty initial snapshot, got %+v", m.snap)
	}
	if m.warning != 70 || m.danger != 90 {
		t.Errorf("expected default thresholds 70/90, got %v/%v", m.warning, m.danger)
	}
	if m.interval != time.Second {
		t.Errorf("expected default interval 1s, got %v", m.interval)
	}
	if got := m.View(); got != "Initializing..." {
		t.Errorf("expected Initializing... before first resize, got %q", got)
	}
}

func TestModel_InitDeliversSnapshots(t *testing.T) {
	store := monitor.NewStore()
	m := NewModel(Options{Store: store})
	defer m.Close()

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected Init() to return a subscription Cmd")
	}
	store.Commit(sampleReading())

	msg, ok := cmd().(snapshotMsg)
	if !ok {
		t.Fatal("expected snapshotMsg from subscription")
	}
	if msg.snap.CPU.Current != 23.5 {
		t.Errorf("CPU = %v, want 23.5", msg.snap.CPU.Current)
	}

	updated, next := m.Update(msg)
	if updated.(Model).snap != msg.snap {
		t.Error("Update should store the delivered snapshot")
	}
	if next == nil {
		t.Error("Update should keep listening for snapshots")
	}
}

func TestModel_CloseEndsSubscription(t *testing.T) {
	store := monitor.NewStore()
	m := NewModel(Options{Store: store})
	cmd := m.Init()
	m.Close()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("expected nil msg after Close, got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("subscription Cmd still blocked after Close")
	}
}

func TestModel_Update_Quit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if !isQuitCmd(cmd) {
			t.Errorf("expected %v to quit", msg)
		}
	}
}

func TestModel_Update_DetailKeys(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	tests := []struct {
		key  string
		want sysmetrics.Kind
	}{
		{"1", sysmetrics.CPU},
		{"2", sysmetrics.RAM},
		{"3", sysmetrics.Disk},
		{"4", sysmetrics.Battery},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			updated, _ := m.Update(runes(tt.key))
			got := updated.(Model)
			if !got.showing || got.detail != tt.want {
				t.Errorf("key %s: showing=%v detail=%v, want detail %v", tt.key, got.showing, got.detail, tt.want)
			}

			back, _ := got.Update(tea.KeyMsg{Type: tea.KeyEsc})
			if back.(Model).showing {
				t.Error("esc should return to the dashboard")
			}
		})
	}
}

func TestModel_Update_Help(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(runes("?"))
	if !updated.(Model).help.ShowAll {
		t.Error("? should expand help")
	}
	updated, _ = updated.Update(runes("?"))
	if updated.(Model).help.ShowAll {
		t.Error("second ? should collapse help")
	}
}

func TestModel_Update_Refresh(t *testing.T) {
	r := &fakeRefresher{result: true}
	m, _ := newTestModel(t, Options{Refresher: r})

	_, cmd := m.Update(runes("r"))
	if cmd == nil {
		t.Fatal("expected refresh Cmd")
	}
	msg, ok := cmd().(refreshMsg)
	if !ok || !msg.committed {
		t.Errorf("expected committed refreshMsg, got %#v", msg)
	}
	if r.calls != 1 {
		t.Errorf("expected one Tick call, got %d", r.calls)
	}
}

func TestModel_Update_RefreshIdle(t *testing.T) {
	m, _ := newTestModel(t, Options{Refresher: &fakeRefresher{result: false}})

	updated, _ := m.Update(refreshMsg{committed: false})
	if note := updated.(Model).lastNote; !strings.Contains(note, "idle") {
		t.Errorf("expected idle note, got %q", note)
	}
	updated, _ = updated.Update(refreshMsg{committed: true})
	if note := updated.(Model).lastNote; note != "" {
		t.Errorf("expected note cleared, got %q", note)
	}
}

func TestModel_Update_RefreshWithoutRefresher(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	if _, cmd := m.Update(runes("r")); cmd != nil {
		t.Error("refresh without a refresher should be a no-op")
	}
}

func TestModel_Update_MouseOutsidePanels(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(tea.MouseMsg{
		X: 0, Y: 0,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	if updated.(Model).showing {
		t.Error("click outside any panel should not open a detail view")
	}
}

func TestModel_View_Dashboard(t *testing.T) {
	m, _ := newTestModel(t, Options{
		Theme: "mono",
		Host: sysmetrics.HostInfo{
			Hostname:    "devbox",
			Platform:    "darwin",
			KernelArch:  "arm64",
			Uptime:      76 * time.Hour,
			TotalMemory: 17_179_869_184,
			TotalDisk:   494_384_795_648,
		},
	})
	view := m.View()

	for _, want := range []string{
		"devbox",
		"CPU - 23%",
		"RAM - 61%",
		"Disk - 72%",
		"Battery - 88%",
		"⚡",
		"3d 4h",
		"17.2 GB",
		"494.4 GB",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard missing %q:\n%s", want, view)
		}
	}
}

func TestModel_View_FitsWidth(t *testing.T) {
	for _, width := range []int{40, 80, 100, 160} {
		m, _ := newTestModel(t, Options{Theme: "mono"})
		updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: 30})
		m = updated.(Model)

		for _, view := range []string{m.View(), m.detailView(sysmetrics.CPU)} {
			for i, line := range strings.Split(view, "\n") {
				if w := ansi.StringWidth(line); w > width {
					t.Errorf("width %d: line %d is %d cells: %q", width, i, w, line)
				}
			}
		}
	}
}

func TestModel_View_Detail(t *testing.T) {
	m, _ := newTestModel(t, Options{Theme: "mono"})
	view := m.detailView(sysmetrics.Battery)

	for _, want := range []string{"Battery usage", "100 ┤", "-60s", "now", "88.0%", "charging"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}
}

// detailView opens the chart for k and renders it.
func (m Model) detailView(k sysmetrics.Kind) string {
	m.openDetail(k)
	return m.View()
}

func TestStats(t *testing.T) {
	lo, hi, avg := stats([]float64{10, 20, 30.5})
	if lo != 10 || hi != 30.5 || avg != 20.2 {
		t.Errorf("stats = %v/%v/%v, want 10/30.5/20.2", lo, hi, avg)
	}
	if lo, hi, avg := stats(nil); lo != 0 || hi != 0 || avg != 0 {
		t.Errorf("stats(nil) = %v/%v/%v, want zeros", lo, hi, avg)
	}
}
