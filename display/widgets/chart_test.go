package widgets

import (
	"strings"
	"testing"
	"time"
)

func TestRenderChart_Layout(t *testing.T) {
	out := RenderChart(ChartConfig{
		Data:   []float64{0, 50, 100},
		Slots:  3,
		Width:  3,
		Height: 4,
		Span:   3 * time.Second,
	})
	lines := strings.Split(out, "\n")

	// 4 plot rows, the x axis and the time caption.
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "100 ┤") {
		t.Errorf("top row should carry the 100 label: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], " 50 ┤") {
		t.Errorf("middle row should carry the 50 label: %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "  0 └───") {
		t.Errorf("unexpected x axis: %q", lines[4])
	}
	if !strings.Contains(lines[5], "now") {
		t.Errorf("time axis should end in now: %q", lines[5])
	}

	// Column 2 is 100%: full in every row. Column 0 is 0%: empty.
	for row := 0; row < 4; row++ {
		cells := []rune(lines[row])[yAxisWidth:]
		if cells[0] != ' ' {
			t.Errorf("row %d: 0%% column should be empty, got %q", row, cells[0])
		}
		if cells[2] != '█' {
			t.Errorf("row %d: 100%% column should be full, got %q", row, cells[2])
		}
	}
	// Column 1 is 50%: bottom two rows full, top two empty.
	if c := []rune(lines[3])[yAxisWidth+1]; c != '█' {
		t.Errorf("bottom row of 50%% column = %q, want full", c)
	}
	if c := []rune(lines[0])[yAxisWidth+1]; c != ' ' {
		t.Errorf("top row of 50%% column = %q, want empty", c)
	}
}

func TestRenderChart_PartialHistoryRightAligned(t *testing.T) {
	out := RenderChart(ChartConfig{
		Data:   []float64{100},
		Slots:  4,
		Width:  4,
		Height: 2,
	})
	top := []rune(strings.Split(out, "\n")[0])[yAxisWidth:]
	if string(top) != "   █" {
		t.Errorf("expected newest point in rightmost column, got %q", string(top))
	}
}

func TestRenderChart_Empty(t *testing.T) {
	out := RenderChart(ChartConfig{Width: 10, Height: 2, Slots: 60, Span: time.Minute})
	if strings.Contains(out, "█") {
		t.Errorf("empty chart should have no filled cells:\n%s", out)
	}
	if !strings.Contains(out, "-60s") {
		t.Errorf("expected -60s caption:\n%s", out)
	}
}

func TestAreaCellPartial(t *testing.T) {
	// 2 rows = 16 steps; 25% is 4 steps into the bottom row.
	if got := areaCell(25, 0, 2); got != '▄' {
		t.Errorf("areaCell(25, 0, 2) = %q, want ▄", got)
	}
	if got := areaCell(25, 1, 2); got != ' ' {
		t.Errorf("areaCell(25, 1, 2) = %q, want space", got)
	}
}
