package metrics

import (
	"runtime"
	"testing"
)

func TestSelfCollector_Snapshot(t *testing.T) {
	t.Parallel()

	sc := NewSelfCollector()
	snap := sc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.NumGoroutine < 1 {
		t.Errorf("NumGoroutine should be >= 1, got %d", snap.NumGoroutine)
	}
}

func TestSelfCollector_CPUTimesMonotonic(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("no getrusage on this platform")
	}
	sc := NewSelfCollector()
	before := sc.Snapshot()

	sum := 0
	for i := 0; i < 5_000_000; i++ {
		sum += i
	}
	_ = sum

	after := sc.Snapshot()
	if after.UserCPU+after.SystemCPU < before.UserCPU+before.SystemCPU {
		t.Error("cumulative CPU time should not decrease")
	}
}
