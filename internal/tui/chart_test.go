package tui

import (
	"strings"
	"testing"

	"github.com/agbru/l3p/internal/snapshot"
)

func TestChartModel_PushIsBounded(t *testing.T) {
	chart := NewChartModel(10)
	for i := range 25 {
		chart.Push(snapshot.Snapshot{CPU: float64(i), Mem: 50, Disk: 75})
	}

	if chart.Len() != 10 {
		t.Fatalf("expected 10 points, got %d", chart.Len())
	}
	cpu := chart.histories[0].Slice()
	if cpu[0] != 15 || cpu[9] != 24 {
		t.Errorf("expected oldest-first eviction to keep 15..24, got %v", cpu)
	}
}

func TestChartModel_Reset(t *testing.T) {
	chart := NewChartModel(10)
	chart.Push(snapshot.Snapshot{CPU: 10, Mem: 20, Disk: 30})
	chart.Reset()

	for i, h := range chart.histories {
		if h.Len() != 0 {
			t.Errorf("series %d not empty after reset", i)
		}
	}
}

func TestChartModel_View(t *testing.T) {
	chart := NewChartModel(60)
	chart.SetSize(60, 20)
	chart.Push(snapshot.Snapshot{CPU: 20, Mem: 40, Disk: 60})
	chart.Push(snapshot.Snapshot{CPU: 30, Mem: 40, Disk: 60})

	view := chart.View()
	for _, want := range []string{"History (2/60)", "CPU", "Mem", "Disk", "peak  30.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestChartModel_ViewCompactUsesSparklines(t *testing.T) {
	chart := NewChartModel(60)
	chart.SetSize(70, 6)
	chart.Push(snapshot.Snapshot{CPU: 100, Mem: 0, Disk: 50})

	view := chart.View()
	if !strings.Contains(view, "█") {
		t.Error("expected a full sparkline block for the 100% CPU sample")
	}
}

func TestChartModel_Window(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		ops      string // s = Shorten, l = Lengthen
		want     int
	}{
		{"starts at capacity", 40, "", 40},
		{"halves", 40, "s", 20},
		{"stops at the minimum", 40, "sss", minWindow},
		{"never exceeds capacity", 40, "lll", 40},
		{"grows back", 40, "ssl", 20},
		{"small capacity is the floor", 5, "ss", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := NewChartModel(tt.capacity)
			for _, op := range tt.ops {
				if op == 's' {
					chart.Shorten()
				} else {
					chart.Lengthen()
				}
			}
			if got := chart.Window(); got != tt.want {
				t.Errorf("Window() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChartModel_ShortenKeepsNewest(t *testing.T) {
	chart := NewChartModel(40)
	for i := range 40 {
		chart.Push(snapshot.Snapshot{CPU: float64(i)})
	}
	chart.Shorten()

	cpu := chart.histories[0].Slice()
	if len(cpu) != 20 || cpu[0] != 20 || cpu[19] != 39 {
		t.Fatalf("expected the newest 20 points 20..39, got %v", cpu)
	}
	chart.Lengthen()
	for i := range 30 {
		chart.Push(snapshot.Snapshot{CPU: float64(100 + i)})
	}
	if chart.Len() != 40 {
		t.Errorf("expected the lengthened window to fill to 40, got %d", chart.Len())
	}
	if !strings.Contains(chart.View(), "History (40/40)") {
		t.Error("title should show the current window")
	}
}
