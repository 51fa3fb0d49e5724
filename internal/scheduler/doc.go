// Package scheduler runs the fixed-interval refresh loops that drive
// sampling and the presenters.
//
// A Loop never overlaps its own ticks and leaves at least one interval
// between the starts of consecutive ticks. Stopping is cooperative: the
// stop signal is observed at the top of each cycle and while waiting, so a
// loop exits within one interval plus the duration of an in-flight tick.
// Tick errors and panics are logged and counted; they never end a loop.
package scheduler
