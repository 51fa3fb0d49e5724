package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/l3p/internal/format"
	"github.com/agbru/l3p/internal/snapshot"
)

// DetailsModel shows the extended readings of the latest snapshot.
type DetailsModel struct {
	details *snapshot.Details
	width   int
	height  int
}

// NewDetailsModel creates an empty details panel.
func NewDetailsModel() DetailsModel { return DetailsModel{} }

// SetSize updates dimensions.
func (d *DetailsModel) SetSize(w, h int) {
	d.width = w
	d.height = h
}

// Update replaces the displayed details. A nil value keeps the previous
// ones on screen.
func (d *DetailsModel) Update(details *snapshot.Details) {
	if details != nil {
		d.details = details
	}
}

// Lines returns the label/value rows of the panel.
func (d DetailsModel) Lines() [][2]string {
	x := d.details
	if x == nil {
		return [][2]string{{"", "collecting…"}}
	}
	rows := [][2]string{
		{"CPU", fmt.Sprintf("%d cores / %d threads", x.CPU.PhysicalCores, x.CPU.LogicalCores)},
	}
	if x.CPU.FrequencyMHz > 0 {
		rows = append(rows, [2]string{"Clock", fmt.Sprintf("%.0f MHz", x.CPU.FrequencyMHz)})
	}
	if len(x.CPU.PerCore) > 0 {
		rows = append(rows, [2]string{"Cores", RenderSparkline(x.CPU.PerCore)})
	}
	rows = append(rows,
		[2]string{"Memory", fmt.Sprintf("%s total, %s available", format.Bytes(x.Memory.Total), format.Bytes(x.Memory.Available))},
		[2]string{"Swap", fmt.Sprintf("%s, %s used", format.Bytes(x.Memory.SwapTotal), format.Percent(x.Memory.SwapPercent))},
		[2]string{"Disk", fmt.Sprintf("%s on %s", format.Bytes(x.Disk.Total), x.Disk.MountPoint)},
		[2]string{"Disk I/O", fmt.Sprintf("read %s, written %s", format.Bytes(x.Disk.ReadBytes), format.Bytes(x.Disk.WriteBytes))},
		[2]string{"Net sent", fmt.Sprintf("%s (%s pkts)", format.Bytes(x.Network.BytesSent), format.Count(int64(x.Network.PacketsSent)))},
		[2]string{"Net recv", fmt.Sprintf("%s (%s pkts)", format.Bytes(x.Network.BytesRecv), format.Count(int64(x.Network.PacketsRecv)))},
		[2]string{"Processes", format.Count(int64(x.Process.Total))},
		[2]string{"l3p", fmt.Sprintf("%s CPU, %s mem, %d threads", format.Percent(x.Process.SelfCPU), format.Percent(x.Process.SelfMemPct), x.Process.SelfThreads)},
	)
	if x.System.Hostname != "" {
		rows = append(rows, [2]string{"Host", x.System.Hostname})
	}
	if x.System.Platform != "" {
		rows = append(rows, [2]string{"Platform", x.System.Platform})
	}
	if x.System.Uptime > 0 {
		rows = append(rows, [2]string{"Uptime", format.Uptime(x.System.Uptime)})
	}
	return rows
}

// View renders the details panel, truncated to the available height.
func (d DetailsModel) View() string {
	innerH := max(d.height-2, 0)
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" System"))
	for i, row := range d.Lines() {
		if i+1 >= innerH {
			break
		}
		b.WriteString("\n ")
		b.WriteString(metricLabelStyle.Render(padRight(row[0], 10)))
		b.WriteString(metricValueStyle.Render(row[1]))
	}
	return panelStyle.
		Width(max(d.width-2, 0)).
		Height(innerH).
		Render(b.String())
}
