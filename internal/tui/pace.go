package tui

import (
	"sync/atomic"
	"time"
)

// Refresh speed bounds of the profile view.
const (
	MinPace        = 100 * time.Millisecond
	DefaultMaxPace = 5 * time.Second
)

// Pace is the profile view's adjustable refresh interval. It is read by
// the scheduler loop and changed from the bubbletea program.
type Pace struct {
	d   atomic.Int64
	max time.Duration
}

// NewPace returns a Pace starting at initial. The upper bound is the larger
// of DefaultMaxPace and initial.
func NewPace(initial time.Duration) *Pace {
	p := &Pace{max: max(DefaultMaxPace, initial)}
	p.Set(initial)
	return p
}

// Get returns the current interval.
func (p *Pace) Get() time.Duration { return time.Duration(p.d.Load()) }

// Set stores d clamped to the allowed range and returns the stored value.
func (p *Pace) Set(d time.Duration) time.Duration {
	d = min(max(d, MinPace), p.max)
	p.d.Store(int64(d))
	return d
}

// Faster shortens the interval by one step.
func (p *Pace) Faster() time.Duration {
	cur := p.Get()
	return p.Set(cur - step(cur-1))
}

// Slower lengthens the interval by one step.
func (p *Pace) Slower() time.Duration {
	cur := p.Get()
	return p.Set(cur + step(cur))
}

// step is 100ms up to one second and 500ms above it.
func step(d time.Duration) time.Duration {
	if d < time.Second {
		return 100 * time.Millisecond
	}
	return 500 * time.Millisecond
}
