// Package sysmon samples system-wide CPU, memory and disk utilization.
//
// The Sampler never fails: a metric whose OS query errors (or returns NaN)
// keeps its last known value, or 0 if it has never been read, and every
// value is clamped to [0, 100] before it reaches a Snapshot.
package sysmon

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/agbru/l3p/internal/logging"
	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/snapshot"
)

// Source is the set of OS reads the Sampler depends on.
type Source interface {
	// CPUPercent returns the non-idle share of CPU time. With interval 0 it
	// measures against the previous call; otherwise it blocks for interval.
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	// MemPercent returns used/total physical memory as a percentage.
	MemPercent(ctx context.Context) (float64, error)
	// DiskPercent returns used/total space of the volume holding path.
	DiskPercent(ctx context.Context, path string) (float64, error)
	// Details collects the extended readings; failed sections are zero.
	Details(ctx context.Context, path string) *snapshot.Details
}

const (
	idxCPU = iota
	idxMem
	idxDisk
)

var metricNames = [3]string{"cpu", "mem", "disk"}

// Sampler turns Source readings into Snapshots.
type Sampler struct {
	src         Source
	diskPath    string
	withDetails func() bool
	now         func() time.Time
	counters    *metrics.Counters
	logger      logging.Logger

	mu   sync.Mutex
	last [3]float64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithDiskPath overrides the monitored volume.
func WithDiskPath(path string) Option {
	return func(s *Sampler) {
		if path != "" {
			s.diskPath = path
		}
	}
}

// WithDetails collects snapshot.Details on samples for which want returns
// true. want is called once per Sample and must not block.
func WithDetails(want func() bool) Option {
	return func(s *Sampler) { s.withDetails = want }
}

// WithCounters records fallbacks in c.
func WithCounters(c *metrics.Counters) Option {
	return func(s *Sampler) { s.counters = c }
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// New creates a Sampler reading from src.
func New(src Source, opts ...Option) *Sampler {
	s := &Sampler{
		src:      src,
		diskPath: DefaultDiskPath(),
		now:      time.Now,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiskPath returns the monitored volume.
func (s *Sampler) DiskPath() string { return s.diskPath }

// DefaultDiskPath returns the system volume: %SystemDrive%\ on Windows,
// "/" elsewhere.
func DefaultDiskPath() string {
	if runtime.GOOS == "windows" {
		drive := os.Getenv("SystemDrive")
		if drive == "" {
			drive = "C:"
		}
		return drive + `\`
	}
	return "/"
}

// Prime performs one blocking CPU measurement of at most d so the first
// published snapshot reflects real load rather than the time since boot.
// The result seeds the CPU last-known value.
func (s *Sampler) Prime(ctx context.Context, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.read(idxCPU, func() (float64, error) { return s.src.CPUPercent(ctx, d) })
}

// Sample reads all three metrics and returns a well-formed Snapshot.
func (s *Sampler) Sample(ctx context.Context) snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot.Snapshot{
		CPU:  s.read(idxCPU, func() (float64, error) { return s.src.CPUPercent(ctx, 0) }),
		Mem:  s.read(idxMem, func() (float64, error) { return s.src.MemPercent(ctx) }),
		Disk: s.read(idxDisk, func() (float64, error) { return s.src.DiskPercent(ctx, s.diskPath) }),
		Time: s.now(),
	}
	if s.withDetails != nil && s.withDetails() {
		snap.Details = s.details(ctx)
	}
	return snap
}

// read runs one metric query. Errors, NaN and panics fall back to the last
// known value; anything else is clamped and becomes the new last value.
func (s *Sampler) read(idx int, fn func() (float64, error)) float64 {
	v, err := guard(fn)
	if err == nil && math.IsNaN(v) {
		err = fmt.Errorf("%s reading is NaN", metricNames[idx])
	}
	if err != nil {
		s.counters.Fallback(metricNames[idx])
		s.logger.Debug("metric read failed, using last known value",
			logging.String("metric", metricNames[idx]),
			logging.Float64("fallback", s.last[idx]),
			logging.Err(err))
		return s.last[idx]
	}
	v = snapshot.ClampPercent(v)
	s.last[idx] = v
	return v
}

func (s *Sampler) details(ctx context.Context) (d *snapshot.Details) {
	defer func() {
		if r := recover(); r != nil {
			s.counters.Fallback("details")
			s.logger.Debug("details collection panicked", logging.String("panic", fmt.Sprint(r)))
			d = &snapshot.Details{Disk: snapshot.DiskDetails{MountPoint: s.diskPath}}
		}
	}()
	return s.src.Details(ctx, s.diskPath)
}

func guard(fn func() (float64, error)) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
