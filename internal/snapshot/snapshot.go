// Package snapshot defines the immutable utilization record shared between
// the sampler and the presenters, and the single-writer store that holds
// the most recent one.
package snapshot

import (
	"math"
	"time"
)

// Snapshot is an immutable record of system utilization at one instant.
// All percentages are in [0, 100]. Values are copied, never mutated.
type Snapshot struct {
	CPU  float64
	Mem  float64
	Disk float64
	Time time.Time

	// Details is populated only when the profile view is enabled.
	// It is shared between copies and must be treated as read-only.
	Details *Details
}

// Unknown returns the placeholder snapshot used before the first sample:
// every percentage is zero and the timestamp is start.
func Unknown(start time.Time) Snapshot {
	return Snapshot{Time: start}
}

// IsUnknown reports whether s carries no sampled data.
func (s Snapshot) IsUnknown() bool {
	return s.CPU == 0 && s.Mem == 0 && s.Disk == 0 && s.Details == nil
}

// Percents returns the three percentages in display order: CPU, Mem, Disk.
func (s Snapshot) Percents() [3]float64 {
	return [3]float64{s.CPU, s.Mem, s.Disk}
}

// ClampPercent bounds v to [0, 100]. NaN maps to 0; callers that need a
// last-known-good fallback must check for NaN first.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
