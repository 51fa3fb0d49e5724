package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/l3p/internal/format"
)

// HeaderModel renders the top bar: title, version, host and how long the
// view has been open.
type HeaderModel struct {
	openedAt time.Time
	updated  time.Time
	version  string
	host     string
	width    int
	now      func() time.Time
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		openedAt: time.Now(),
		version:  version,
		now:      time.Now,
	}
}

// SetSnapshot records the sample time and host of the latest snapshot.
func (h *HeaderModel) SetSnapshot(taken time.Time, host string) {
	h.updated = taken
	if host != "" {
		h.host = host
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	title := titleStyle.Render("L3P Profile")
	if h.version != "" {
		title += versionStyle.Render(" v" + h.version)
	}

	pipe := versionStyle.Render(" | ")
	left := title
	if h.host != "" {
		left += pipe + metricValueStyle.Render(h.host)
	}
	left += pipe + metricLabelStyle.Render("open "+format.Uptime(h.now().Sub(h.openedAt)))

	right := ""
	if !h.updated.IsZero() {
		right = versionStyle.Render(fmt.Sprintf("updated %s", h.updated.Format(time.TimeOnly)))
	}

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
