package tui

import (
	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/snapshot"
)

// SnapshotMsg delivers one refresh of the profile view.
type SnapshotMsg struct {
	Current  snapshot.Snapshot
	Previous snapshot.Snapshot
	Counters metrics.Summary
	Self     metrics.SelfUsage
}

// LogMsg carries one captured log line.
type LogMsg struct {
	Line string
}
