package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/l3p/internal/format"
	"github.com/agbru/l3p/internal/metrics"
)

// FooterModel renders key hints, the run state, refresh speed and the
// internal counters.
type FooterModel struct {
	keymap   KeyMap
	paused   bool
	interval time.Duration
	counters metrics.Summary
	width    int
}

// NewFooterModel creates a new footer.
func NewFooterModel(interval time.Duration) FooterModel {
	return FooterModel{keymap: DefaultKeyMap(), interval: interval}
}

// SetPaused updates the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetInterval updates the displayed refresh interval.
func (f *FooterModel) SetInterval(d time.Duration) { f.interval = d }

// SetCounters updates the displayed counters.
func (f *FooterModel) SetCounters(s metrics.Summary) { f.counters = s }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// View renders the footer.
func (f FooterModel) View() string {
	var hints []string
	for _, b := range f.keymap.footerBindings() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}

	status := statusRunningStyle.Render("LIVE")
	if f.paused {
		status = statusPausedStyle.Render("PAUSED")
	}

	stats := fmt.Sprintf("every %s  ticks %s  fallbacks %s",
		format.Interval(f.interval),
		format.Count(int64(metrics.Total(f.counters.Ticks))),
		format.Count(int64(metrics.Total(f.counters.Fallbacks))))
	if errs := metrics.Total(f.counters.TickErrors); errs > 0 {
		stats += warningStyle.Render(fmt.Sprintf("  errors %s", format.Count(int64(errs))))
	}
	if f.counters.IconFailures > 0 {
		stats += warningStyle.Render(fmt.Sprintf("  icon failures %s", format.Count(int64(f.counters.IconFailures))))
	}

	return " " + strings.Join(hints, "  ") + "  " + status + "  " + footerDescStyle.Render(stats)
}
