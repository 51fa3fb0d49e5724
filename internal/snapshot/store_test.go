package snapshot

import (
	"math"
	"sync"
	"testing"
	"time"
)

var start = time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)

func uniform(v float64, ts time.Time) Snapshot {
	return Snapshot{CPU: v, Mem: v, Disk: v, Time: ts}
}

func TestStore_LatestBeforePublish(t *testing.T) {
	s := NewStore(start)
	got := s.Latest()
	if !got.IsUnknown() {
		t.Errorf("expected unknown snapshot, got %+v", got)
	}
	if !got.Time.Equal(start) {
		t.Errorf("expected timestamp %v, got %v", start, got.Time)
	}
	if !s.Previous().IsUnknown() {
		t.Error("expected unknown previous snapshot")
	}
}

func TestStore_BackToBackPublish(t *testing.T) {
	s := NewStore(start)
	first := Snapshot{CPU: 10, Mem: 20, Disk: 30, Time: start.Add(time.Second)}
	second := Snapshot{CPU: 40, Mem: 50, Disk: 60, Time: start.Add(2 * time.Second)}

	s.Publish(first)
	s.Publish(second)

	if got := s.Latest(); got != second {
		t.Errorf("Latest() = %+v, want %+v", got, second)
	}
	if got := s.Previous(); got != first {
		t.Errorf("Previous() = %+v, want %+v", got, first)
	}
	cur, prev := s.Pair()
	if cur != second || prev != first {
		t.Errorf("Pair() = (%+v, %+v), want (%+v, %+v)", cur, prev, second, first)
	}
}

// TestStore_ConcurrentNoTornReads publishes snapshots whose fields are all
// equal and checks that readers never see fields from different ticks.
func TestStore_ConcurrentNoTornReads(t *testing.T) {
	s := NewStore(start)
	const ticks = 5000
	const readers = 8

	done := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				cur, prev := s.Pair()
				if cur.CPU != cur.Mem || cur.Mem != cur.Disk {
					t.Errorf("torn current snapshot: %+v", cur)
					return
				}
				if !cur.IsUnknown() && !prev.IsUnknown() && prev.CPU != cur.CPU-1 {
					t.Errorf("previous %v does not precede current %v", prev.CPU, cur.CPU)
					return
				}
			}
		}()
	}

	for i := 1; i <= ticks; i++ {
		s.Publish(uniform(float64(i), start.Add(time.Duration(i)*time.Millisecond)))
	}
	close(done)
	wg.Wait()
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"mid", 42.345, 42.345},
		{"hundred", 100, 100},
		{"over", 150, 100},
		{"nan", math.NaN(), 0},
		{"+inf", math.Inf(1), 100},
		{"-inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPercent(tt.in); got != tt.want {
				t.Errorf("ClampPercent(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnapshot_Percents(t *testing.T) {
	s := Snapshot{CPU: 1, Mem: 2, Disk: 3}
	if got := s.Percents(); got != [3]float64{1, 2, 3} {
		t.Errorf("Percents() = %v, want [1 2 3]", got)
	}
}
