// Package tray shows the utilization glyph in the desktop notification
// area.
//
// A Backend wraps the platform tray (fyne.io/systray, or a headless stand-in)
// and is selected once at startup. The Presenter renders snapshots off the
// backend's event loop and hands finished updates to a single apply
// goroutine, so a slow or failing backend never blocks the scheduler.
package tray
