package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/l3p/internal/format"
	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/snapshot"
)

// seriesNames are the labels of the three utilization series.
var seriesNames = [3]string{"CPU", "Mem", "Disk"}

// MetricsModel displays the current CPU, memory and disk percentages with
// their change since the previous sample, plus l3p's own footprint.
type MetricsModel struct {
	current  [3]float64
	previous [3]float64
	diskPath string
	self     metrics.SelfUsage
	sampled  bool
	width    int
	height   int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel(diskPath string) MetricsModel {
	return MetricsModel{diskPath: diskPath}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update stores the latest pair of snapshots.
func (m *MetricsModel) Update(cur, prev snapshot.Snapshot, self metrics.SelfUsage) {
	m.current = cur.Percents()
	m.previous = prev.Percents()
	m.self = self
	m.sampled = true
	if cur.Details != nil && cur.Details.Disk.MountPoint != "" {
		m.diskPath = cur.Details.Disk.MountPoint
	}
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render(" Utilization"))

	for i, name := range seriesNames {
		label := name
		if i == 2 && m.diskPath != "" {
			label = fmt.Sprintf("Disk %s", m.diskPath)
		}
		value := "--"
		delta := ""
		if m.sampled {
			value = format.Percent(m.current[i])
			delta = renderDelta(m.previous[i], m.current[i])
		}
		rows.WriteString("\n")
		rows.WriteString(fmt.Sprintf(" %s %s %s",
			seriesStyles[i].Render(fmt.Sprintf("%-10s", label)),
			metricValueStyle.Render(fmt.Sprintf("%7s", value)),
			delta))
	}

	rows.WriteString("\n")
	rows.WriteString(fmt.Sprintf(" %s %s %s %s %s %s",
		metricLabelStyle.Render("l3p heap"),
		metricValueStyle.Render(format.Bytes(m.self.HeapAlloc)),
		metricLabelStyle.Render("goroutines"),
		metricValueStyle.Render(fmt.Sprintf("%d", m.self.NumGoroutine)),
		metricLabelStyle.Render("cpu"),
		metricValueStyle.Render(format.FormatExecutionDuration(m.self.UserCPU+m.self.SystemCPU))))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func renderDelta(prev, cur float64) string {
	d := format.Delta(prev, cur)
	switch {
	case strings.HasPrefix(d, "▲"):
		return deltaUpStyle.Render(d)
	case strings.HasPrefix(d, "▼"):
		return deltaDownStyle.Render(d)
	default:
		return metricLabelStyle.Render(d)
	}
}

// padRight pads s with spaces to width w, measured in terminal cells.
func padRight(s string, w int) string {
	if visible := lipgloss.Width(s); visible < w {
		return s + strings.Repeat(" ", w-visible)
	}
	return s
}
