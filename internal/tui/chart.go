package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/l3p/internal/snapshot"
)

// minWindow is the shortest history window reachable with Shorten.
const minWindow = 10

// ChartModel keeps a bounded rolling history per series and plots it.
// The window can be narrowed and widened at runtime but never exceeds
// the capacity it was created with.
type ChartModel struct {
	histories [3]*RingBuffer
	limit     int
	width     int
	height    int
}

// NewChartModel creates charts keeping at most capacity points each.
func NewChartModel(capacity int) ChartModel {
	c := ChartModel{limit: max(capacity, 1)}
	for i := range c.histories {
		c.histories[i] = NewRingBuffer(c.limit)
	}
	return c
}

// Window returns the number of points each series currently keeps.
func (c ChartModel) Window() int { return c.histories[0].Cap() }

// Shorten halves the window, keeping the newest points.
func (c *ChartModel) Shorten() int { return c.setWindow(c.Window() / 2) }

// Lengthen doubles the window up to the creation capacity. Points dropped
// by an earlier Shorten do not come back.
func (c *ChartModel) Lengthen() int { return c.setWindow(c.Window() * 2) }

func (c *ChartModel) setWindow(n int) int {
	n = min(max(n, min(minWindow, c.limit)), c.limit)
	for _, h := range c.histories {
		h.Resize(n)
	}
	return n
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// Push appends one point to every series.
func (c *ChartModel) Push(s snapshot.Snapshot) {
	for i, v := range s.Percents() {
		c.histories[i].Push(v)
	}
}

// Reset clears all histories.
func (c *ChartModel) Reset() {
	for _, h := range c.histories {
		h.Reset()
	}
}

// Len returns the number of points held per series.
func (c ChartModel) Len() int { return c.histories[0].Len() }

// View renders one braille chart per series, or one sparkline row each
// when the panel is too short.
func (c ChartModel) View() string {
	innerW := max(c.width-4, 1)
	innerH := max(c.height-2, 0)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf(" History (%d/%d)", c.Len(), c.histories[0].Cap())))

	chartRows := (innerH - 1 - len(c.histories)) / len(c.histories)
	for i, h := range c.histories {
		mean, peak := h.Stats()
		label := fmt.Sprintf("%-4s avg %5.1f%%  peak %5.1f%%", seriesNames[i], mean, peak)
		b.WriteString("\n ")
		if chartRows < 1 {
			spark := RenderSparkline(h.Tail(max(innerW-len(label)-1, 0)))
			b.WriteString(seriesStyles[i].Render(label) + " " + seriesStyles[i].Render(spark))
			continue
		}
		b.WriteString(seriesStyles[i].Render(label))
		for _, line := range RenderBrailleChart(h.Tail(innerW*2), innerW, chartRows) {
			b.WriteString("\n ")
			b.WriteString(seriesStyles[i].Render(line))
		}
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(innerH).
		Render(b.String())
}
