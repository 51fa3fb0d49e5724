package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines bounds the log panel's memory.
const maxLogLines = 500

// LogsModel is a scrollable panel of captured log lines.
type LogsModel struct {
	lines  []string
	offset int // lines scrolled up from the bottom
	keymap KeyMap
	width  int
	height int
}

// NewLogsModel creates an empty log panel.
func NewLogsModel() LogsModel {
	return LogsModel{keymap: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Add appends a line, dropping the oldest past maxLogLines.
func (l *LogsModel) Add(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - maxLogLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	if l.offset > 0 {
		l.offset = min(l.offset+1, l.maxOffset())
	}
}

// Len returns the number of stored lines.
func (l LogsModel) Len() int { return len(l.lines) }

func (l LogsModel) visible() int { return max(l.height-3, 1) }

func (l LogsModel) maxOffset() int { return max(len(l.lines)-l.visible(), 0) }

// Update handles scrolling keys.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.offset++
	case key.Matches(msg, l.keymap.Down):
		l.offset--
	case key.Matches(msg, l.keymap.PageUp):
		l.offset += l.visible()
	case key.Matches(msg, l.keymap.PageDown):
		l.offset -= l.visible()
	}
	l.offset = min(max(l.offset, 0), l.maxOffset())
}

// View renders the visible window of lines.
func (l LogsModel) View() string {
	innerW := max(l.width-4, 1)
	end := len(l.lines) - l.offset
	start := max(end-l.visible(), 0)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" Log"))
	if len(l.lines) == 0 {
		b.WriteString("\n ")
		b.WriteString(logTimeStyle.Render("no messages"))
	}
	for _, line := range l.lines[start:end] {
		if len([]rune(line)) > innerW {
			line = string([]rune(line)[:innerW-1]) + "…"
		}
		b.WriteString("\n ")
		b.WriteString(logTextStyle.Render(line))
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(l.height-2, 0)).
		Render(b.String())
}
