// Package format renders byte counts, durations and percentages for the
// profile view and log output.
package format
