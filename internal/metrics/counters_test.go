package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters_ObserveTick(t *testing.T) {
	c := NewCounters()
	c.ObserveTick("tray", 3*time.Millisecond, false)
	c.ObserveTick("tray", 3*time.Millisecond, true)
	c.ObserveTick("sample", time.Millisecond, false)

	if got := testutil.ToFloat64(c.ticks.WithLabelValues("tray")); got != 2 {
		t.Errorf("tray ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.tickErrors.WithLabelValues("tray")); got != 1 {
		t.Errorf("tray tick errors = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.tickDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestCounters_Summarize(t *testing.T) {
	c := NewCounters()
	c.ObserveTick("sample", time.Millisecond, false)
	c.ObserveTick("profile", time.Millisecond, true)
	c.Fallback("cpu")
	c.Fallback("cpu")
	c.Fallback("disk")
	c.IconFailure()

	s := c.Summarize()
	if s.Ticks["sample"] != 1 || s.Ticks["profile"] != 1 {
		t.Errorf("unexpected ticks: %v", s.Ticks)
	}
	if s.TickErrors["profile"] != 1 {
		t.Errorf("unexpected tick errors: %v", s.TickErrors)
	}
	if s.Fallbacks["cpu"] != 2 || s.Fallbacks["disk"] != 1 {
		t.Errorf("unexpected fallbacks: %v", s.Fallbacks)
	}
	if s.IconFailures != 1 {
		t.Errorf("IconFailures = %v, want 1", s.IconFailures)
	}
	if Total(s.Fallbacks) != 3 {
		t.Errorf("Total(fallbacks) = %v, want 3", Total(s.Fallbacks))
	}
}

func TestCounters_NilSafe(t *testing.T) {
	var c *Counters
	c.ObserveTick("x", 0, true)
	c.Fallback("cpu")
	c.IconFailure()
	if s := c.Summarize(); len(s.Ticks) != 0 {
		t.Errorf("nil counters should summarize to empty, got %v", s.Ticks)
	}
}

func TestCounters_Exposition(t *testing.T) {
	c := NewCounters()
	c.IconFailure()

	expected := `
# HELP l3p_icon_update_failures_total Tray icon or tooltip updates rejected by the backend.
# TYPE l3p_icon_update_failures_total counter
l3p_icon_update_failures_total 1
`
	if err := testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "l3p_icon_update_failures_total"); err != nil {
		t.Error(err)
	}
}
