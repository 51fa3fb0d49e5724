package metrics

import (
	"runtime"
	"time"
)

// SelfUsage holds a point-in-time reading of l3p's own footprint.
type SelfUsage struct {
	HeapAlloc    uint64        // bytes in use by the heap
	Sys          uint64        // total bytes obtained from the OS
	NumGC        uint32        // completed GC cycles
	NumGoroutine int           // live goroutines
	UserCPU      time.Duration // cumulative user CPU time
	SystemCPU    time.Duration // cumulative system CPU time
}

// SelfCollector reads runtime and rusage statistics for the current process.
type SelfCollector struct{}

// NewSelfCollector creates a new collector.
func NewSelfCollector() *SelfCollector {
	return &SelfCollector{}
}

// Snapshot reads the current process statistics. CPU times are zero on
// platforms without getrusage.
func (sc *SelfCollector) Snapshot() SelfUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	user, sys := cpuTimes()
	return SelfUsage{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
		UserCPU:      user,
		SystemCPU:    sys,
	}
}
