package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/l3p/internal/config"
)

// Options configures the profile model.
type Options struct {
	Version  string
	History  int
	DiskPath string
	Pace     *Pace
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// leftWidth returns the width allocated to the left column (metrics + details).
func (l LayoutManager) leftWidth() int {
	return l.width * LeftColumnWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (charts + logs).
func (l LayoutManager) rightWidth() int {
	return l.width - l.leftWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

// detailsHeight returns the height allocated to the details panel.
func (l LayoutManager) detailsHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// logsHeight returns the height allocated to the logs panel.
func (l LayoutManager) logsHeight() int {
	return min(LogsPanelHeight, l.bodyHeight()/3)
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.logsHeight()
}

// Layout constants for the profile view.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 8
	LeftColumnWidthPercent = 45
	MetricsPanelHeight     = 7
	LogsPanelHeight        = 8
)

// Model is the root bubbletea model of the profile view.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	chart   ChartModel
	details DetailsModel
	logs    LogsModel
	footer  FooterModel

	keymap KeyMap
	pace   *Pace
	paused bool

	LayoutManager
}

// NewModel creates the profile model.
func NewModel(opts Options) Model {
	if opts.History <= 0 {
		opts.History = config.DefaultHistory
	}
	if opts.Pace == nil {
		opts.Pace = NewPace(config.DefaultProfileInterval)
	}
	return Model{
		header:  NewHeaderModel(opts.Version),
		metrics: NewMetricsModel(opts.DiskPath),
		chart:   NewChartModel(opts.History),
		details: NewDetailsModel(),
		logs:    NewLogsModel(),
		footer:  NewFooterModel(opts.Pace.Get()),
		keymap:  DefaultKeyMap(),
		pace:    opts.Pace,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SnapshotMsg:
		// Counters keep moving while paused; the panels stay frozen.
		m.footer.SetCounters(msg.Counters)
		if m.paused {
			return m, nil
		}
		m.header.SetSnapshot(msg.Current.Time, hostOf(msg))
		m.metrics.Update(msg.Current, msg.Previous, msg.Self)
		m.chart.Push(msg.Current)
		m.details.Update(msg.Current.Details)
		return m, nil

	case LogMsg:
		m.logs.Add(msg.Line)
		return m, nil
	}

	return m, nil
}

func hostOf(msg SnapshotMsg) string {
	if msg.Current.Details == nil {
		return ""
	}
	return msg.Current.Details.System.Hostname
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.chart.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.Faster):
		m.footer.SetInterval(m.pace.Faster())
		return m, nil

	case key.Matches(msg, m.keymap.Slower):
		m.footer.SetInterval(m.pace.Slower())
		return m, nil

	case key.Matches(msg, m.keymap.Shorter):
		m.chart.Shorten()
		return m, nil

	case key.Matches(msg, m.keymap.Longer):
		m.chart.Lengthen()
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// Paused reports whether panel updates are frozen.
func (m Model) Paused() bool { return m.paused }

// Interval returns the current refresh interval.
func (m Model) Interval() time.Duration { return m.pace.Get() }

// View renders the entire profile view.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.details.View())
	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.chart.View(), m.logs.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.metrics.SetSize(m.leftWidth(), m.metricsHeight())
	m.details.SetSize(m.leftWidth(), m.detailsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
	m.logs.SetSize(m.rightWidth(), m.logsHeight())
}
