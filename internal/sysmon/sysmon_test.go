package sysmon

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/snapshot"
)

// reading is one scripted result for a fake metric.
type reading struct {
	v     float64
	err   error
	panic bool
}

// fakeSource replays scripted readings; the last entry repeats forever.
type fakeSource struct {
	cpu, mem, disk []reading
	details        *snapshot.Details
	primeInterval  time.Duration
	diskPath       string
}

func next(rs *[]reading) (float64, error) {
	if len(*rs) == 0 {
		return 0, errors.New("no reading scripted")
	}
	r := (*rs)[0]
	if len(*rs) > 1 {
		*rs = (*rs)[1:]
	}
	if r.panic {
		panic("os call exploded")
	}
	return r.v, r.err
}

func (f *fakeSource) CPUPercent(_ context.Context, interval time.Duration) (float64, error) {
	if interval > 0 {
		f.primeInterval = interval
	}
	return next(&f.cpu)
}
func (f *fakeSource) MemPercent(context.Context) (float64, error) { return next(&f.mem) }
func (f *fakeSource) DiskPercent(_ context.Context, path string) (float64, error) {
	f.diskPath = path
	return next(&f.disk)
}
func (f *fakeSource) Details(context.Context, string) *snapshot.Details { return f.details }

func always() bool { return true }

var fixedTime = time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC)

func newTestSampler(src Source, opts ...Option) *Sampler {
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return New(src, opts...)
}

func TestSample_ClampsOutOfRange(t *testing.T) {
	src := &fakeSource{
		cpu:  []reading{{v: 150}},
		mem:  []reading{{v: -5}},
		disk: []reading{{v: 42.345}},
	}
	s := newTestSampler(src).Sample(context.Background())

	want := snapshot.Snapshot{CPU: 100, Mem: 0, Disk: 42.345, Time: fixedTime}
	if s != want {
		t.Errorf("Sample() = %+v, want %+v", s, want)
	}
}

func TestSample_FirstReadErrorYieldsZero(t *testing.T) {
	src := &fakeSource{
		cpu:  []reading{{err: errors.New("perm denied")}},
		mem:  []reading{{v: 50}},
		disk: []reading{{err: errors.New("not mounted")}},
	}
	s := newTestSampler(src).Sample(context.Background())
	if s.CPU != 0 || s.Mem != 50 || s.Disk != 0 {
		t.Errorf("unexpected snapshot %+v", s)
	}
}

func TestSample_FallsBackToLastKnown(t *testing.T) {
	src := &fakeSource{
		cpu:  []reading{{v: 30}, {err: errors.New("transient")}},
		mem:  []reading{{v: 60}, {v: math.NaN()}},
		disk: []reading{{v: 70}, {panic: true}},
	}
	counters := metrics.NewCounters()
	sampler := newTestSampler(src, WithCounters(counters))

	first := sampler.Sample(context.Background())
	second := sampler.Sample(context.Background())

	if first.CPU != 30 || first.Mem != 60 || first.Disk != 70 {
		t.Fatalf("unexpected first snapshot %+v", first)
	}
	if second.CPU != 30 || second.Mem != 60 || second.Disk != 70 {
		t.Errorf("expected last-known values, got %+v", second)
	}

	sum := counters.Summarize()
	for _, m := range []string{"cpu", "mem", "disk"} {
		if sum.Fallbacks[m] != 1 {
			t.Errorf("fallbacks[%s] = %v, want 1", m, sum.Fallbacks[m])
		}
	}
}

func TestSample_ClampedValueBecomesLastKnown(t *testing.T) {
	src := &fakeSource{
		cpu:  []reading{{v: 250}, {err: errors.New("gone")}},
		mem:  []reading{{v: 1}},
		disk: []reading{{v: 1}},
	}
	sampler := newTestSampler(src)
	sampler.Sample(context.Background())
	if got := sampler.Sample(context.Background()).CPU; got != 100 {
		t.Errorf("CPU fallback = %v, want clamped 100", got)
	}
}

func TestSample_Details(t *testing.T) {
	details := &snapshot.Details{CPU: snapshot.CPUDetails{LogicalCores: 8}}
	src := &fakeSource{
		cpu: []reading{{v: 1}}, mem: []reading{{v: 1}}, disk: []reading{{v: 1}},
		details: details,
	}

	if s := newTestSampler(src).Sample(context.Background()); s.Details != nil {
		t.Error("details should be nil when not enabled")
	}
	if s := newTestSampler(src, WithDetails(always)).Sample(context.Background()); s.Details != details {
		t.Error("details should be attached when enabled")
	}
}

func TestSample_DetailsFollowPredicate(t *testing.T) {
	details := &snapshot.Details{CPU: snapshot.CPUDetails{LogicalCores: 8}}
	src := &fakeSource{
		cpu: []reading{{v: 1}}, mem: []reading{{v: 1}}, disk: []reading{{v: 1}},
		details: details,
	}
	open := false
	sampler := newTestSampler(src, WithDetails(func() bool { return open }))

	if s := sampler.Sample(context.Background()); s.Details != nil {
		t.Error("details collected while nobody wants them")
	}
	open = true
	if s := sampler.Sample(context.Background()); s.Details != details {
		t.Error("details missing once wanted")
	}
	open = false
	if s := sampler.Sample(context.Background()); s.Details != nil {
		t.Error("details still collected after the condition cleared")
	}
}

func TestSample_DiskPath(t *testing.T) {
	src := &fakeSource{cpu: []reading{{v: 1}}, mem: []reading{{v: 1}}, disk: []reading{{v: 1}}}
	newTestSampler(src, WithDiskPath("/data")).Sample(context.Background())
	if src.diskPath != "/data" {
		t.Errorf("disk path = %q, want /data", src.diskPath)
	}

	src = &fakeSource{cpu: []reading{{v: 1}}, mem: []reading{{v: 1}}, disk: []reading{{v: 1}}}
	newTestSampler(src, WithDiskPath("")).Sample(context.Background())
	if src.diskPath != DefaultDiskPath() {
		t.Errorf("empty override should keep default, got %q", src.diskPath)
	}
}

func TestPrime_SeedsCPU(t *testing.T) {
	src := &fakeSource{
		cpu:  []reading{{v: 12.5}, {err: errors.New("no delta yet")}},
		mem:  []reading{{v: 1}},
		disk: []reading{{v: 1}},
	}
	sampler := newTestSampler(src)
	sampler.Prime(context.Background(), 100*time.Millisecond)

	if src.primeInterval != 100*time.Millisecond {
		t.Errorf("prime interval = %v, want 100ms", src.primeInterval)
	}
	if got := sampler.Sample(context.Background()).CPU; got != 12.5 {
		t.Errorf("CPU after prime = %v, want 12.5", got)
	}
}

// TestSample_AlwaysInRange_PropertyBased feeds arbitrary readings, including
// errors and non-finite values, and checks every field stays in [0, 100].
func TestSample_AlwaysInRange_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genReading := gen.OneGenOf(
		gen.Float64().Map(func(v float64) reading { return reading{v: v} }),
		gen.Float64Range(-1e6, 1e6).Map(func(v float64) reading { return reading{v: v} }),
		gen.Const(reading{v: math.NaN()}),
		gen.Const(reading{v: math.Inf(1)}),
		gen.Const(reading{err: errors.New("io error")}),
		gen.Const(reading{panic: true}),
	)

	properties.Property("snapshot fields clamped to [0,100]", prop.ForAll(
		func(cpu, mem, disk []reading) bool {
			src := &fakeSource{cpu: append(cpu, reading{v: 1}), mem: append(mem, reading{v: 1}), disk: append(disk, reading{v: 1})}
			sampler := newTestSampler(src)
			for i := 0; i < len(cpu)+1; i++ {
				s := sampler.Sample(context.Background())
				for _, v := range s.Percents() {
					if math.IsNaN(v) || v < 0 || v > 100 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(genReading),
		gen.SliceOf(genReading),
		gen.SliceOf(genReading),
	))

	properties.TestingRun(t)
}

func TestGopsutilSource_ReturnsValidRanges(t *testing.T) {
	if testing.Short() {
		t.Skip("reads live OS counters")
	}
	sampler := New(NewGopsutilSource(), WithDetails(always))
	sampler.Prime(context.Background(), 50*time.Millisecond)
	s := sampler.Sample(context.Background())

	for name, v := range map[string]float64{"cpu": s.CPU, "mem": s.Mem, "disk": s.Disk} {
		if v < 0 || v > 100 {
			t.Errorf("%s out of range: %f", name, v)
		}
	}
	if s.Mem == 0 {
		t.Error("expected non-zero memory usage on a running system")
	}
	if s.Details == nil || s.Details.Disk.MountPoint != DefaultDiskPath() {
		t.Errorf("expected details for %s, got %+v", DefaultDiskPath(), s.Details)
	}
}
