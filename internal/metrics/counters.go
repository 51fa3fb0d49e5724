package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Counters tracks l3p's internal health: scheduler ticks, tick failures,
// sampler fallbacks and tray icon update failures. The registry is private
// to the process and is only read back by the profile view.
type Counters struct {
	registry     *prometheus.Registry
	ticks        *prometheus.CounterVec
	tickErrors   *prometheus.CounterVec
	tickDuration *prometheus.HistogramVec
	fallbacks    *prometheus.CounterVec
	iconFailures prometheus.Counter
}

// NewCounters creates and registers a fresh set of counters.
func NewCounters() *Counters {
	c := &Counters{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "l3p_ticks_total",
			Help: "Completed scheduler ticks by loop.",
		}, []string{"loop"}),
		tickErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "l3p_tick_errors_total",
			Help: "Scheduler ticks that returned an error or panicked, by loop.",
		}, []string{"loop"}),
		tickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "l3p_tick_duration_seconds",
			Help:    "Wall time spent inside a tick, by loop.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"loop"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "l3p_sample_fallbacks_total",
			Help: "Metric reads that failed and fell back to the last known value.",
		}, []string{"metric"}),
		iconFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "l3p_icon_update_failures_total",
			Help: "Tray icon or tooltip updates rejected by the backend.",
		}),
	}
	c.registry.MustRegister(c.ticks, c.tickErrors, c.tickDuration, c.fallbacks, c.iconFailures)
	return c
}

// ObserveTick records one completed tick of loop.
func (c *Counters) ObserveTick(loop string, d time.Duration, failed bool) {
	if c == nil {
		return
	}
	c.ticks.WithLabelValues(loop).Inc()
	c.tickDuration.WithLabelValues(loop).Observe(d.Seconds())
	if failed {
		c.tickErrors.WithLabelValues(loop).Inc()
	}
}

// Fallback records a failed read of metric ("cpu", "mem", "disk", ...).
func (c *Counters) Fallback(metric string) {
	if c == nil {
		return
	}
	c.fallbacks.WithLabelValues(metric).Inc()
}

// IconFailure records a rejected tray update.
func (c *Counters) IconFailure() {
	if c == nil {
		return
	}
	c.iconFailures.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Counters) Registry() *prometheus.Registry {
	return c.registry
}

// Summary is a flattened view of the counters for display.
type Summary struct {
	Ticks        map[string]float64
	TickErrors   map[string]float64
	Fallbacks    map[string]float64
	IconFailures float64
}

// Summarize gathers the registry and flattens counter values by label.
func (c *Counters) Summarize() Summary {
	s := Summary{
		Ticks:      map[string]float64{},
		TickErrors: map[string]float64{},
		Fallbacks:  map[string]float64{},
	}
	if c == nil {
		return s
	}
	families, err := c.registry.Gather()
	if err != nil {
		return s
	}
	for _, mf := range families {
		switch mf.GetName() {
		case "l3p_ticks_total":
			collect(mf, "loop", s.Ticks)
		case "l3p_tick_errors_total":
			collect(mf, "loop", s.TickErrors)
		case "l3p_sample_fallbacks_total":
			collect(mf, "metric", s.Fallbacks)
		case "l3p_icon_update_failures_total":
			for _, m := range mf.GetMetric() {
				s.IconFailures += m.GetCounter().GetValue()
			}
		}
	}
	return s
}

func collect(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label {
				into[lp.GetValue()] += m.GetCounter().GetValue()
			}
		}
	}
}

// Total sums the values of a Summary map.
func Total(m map[string]float64) float64 {
	var t float64
	for _, v := range m {
		t += v
	}
	return t
}
