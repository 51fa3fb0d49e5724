package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/l3p/internal/ui"
)

// Style variables for the profile view.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	panelTitleStyle    lipgloss.Style
	logTimeStyle       lipgloss.Style
	logTextStyle       lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	deltaUpStyle       lipgloss.Style
	deltaDownStyle     lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	warningStyle       lipgloss.Style

	// seriesStyles color the CPU, Mem and Disk series like the tray bars.
	seriesStyles [3]lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again when a view opens, after InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	logTimeStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	logTextStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	deltaUpStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	deltaDownStyle = lipgloss.NewStyle().
		Foreground(t.CPU)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.CPU).
		Bold(true)

	statusPausedStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	seriesStyles = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(t.CPU),
		lipgloss.NewStyle().Foreground(t.Mem),
		lipgloss.NewStyle().Foreground(t.Disk),
	}
}
