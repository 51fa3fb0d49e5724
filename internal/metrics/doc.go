// Package metrics records l3p's own health (tick counts, sampler fallbacks,
// tray update failures) in a private Prometheus registry and reports the
// process's own resource footprint for the profile view.
package metrics
