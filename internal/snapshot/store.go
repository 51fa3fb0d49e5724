package snapshot

import (
	"sync/atomic"
	"time"
)

// pair is the unit swapped by the store: the current snapshot and the one
// it replaced. Both travel together so readers never see a current value
// paired with a stale previous one.
type pair struct {
	current  Snapshot
	previous Snapshot
}

// Store holds the latest Snapshot. It has a single writer (the sampler
// loop) and any number of readers. Reads are lock-free and never observe a
// partially written value.
type Store struct {
	p atomic.Pointer[pair]
}

// NewStore creates a store holding the Unknown snapshot stamped with start.
func NewStore(start time.Time) *Store {
	s := &Store{}
	u := Unknown(start)
	s.p.Store(&pair{current: u, previous: u})
	return s
}

// Publish replaces the current snapshot. The replaced value becomes Previous.
// Publish must only be called from the sampling loop.
func (s *Store) Publish(snap Snapshot) {
	old := s.p.Load()
	s.p.Store(&pair{current: snap, previous: old.current})
}

// Latest returns the most recently published snapshot, or the Unknown
// snapshot if nothing has been published yet. It never blocks.
func (s *Store) Latest() Snapshot {
	return s.p.Load().current
}

// Previous returns the snapshot that Latest replaced.
func (s *Store) Previous() Snapshot {
	return s.p.Load().previous
}

// Pair returns Latest and Previous read from the same publication.
func (s *Store) Pair() (current, previous Snapshot) {
	p := s.p.Load()
	return p.current, p.previous
}
