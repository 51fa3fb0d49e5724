package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/agbru/l3p/internal/sysmon"
)

// maxPrime bounds the blocking CPU measurement done before the first publish.
const maxPrime = 250 * time.Millisecond

// Spinner abstracts the terminal spinner shown while priming.
type Spinner interface {
	Start()
	Stop()
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

var newSpinner = func(w io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Sampling system…"
	return &realSpinner{s}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// primeDuration is min(maxPrime, interval).
func primeDuration(interval time.Duration) time.Duration {
	return min(maxPrime, interval)
}

// prime seeds the sampler's CPU reading, showing a spinner on w when it is
// a terminal.
func prime(ctx context.Context, s *sysmon.Sampler, interval time.Duration, w io.Writer) {
	if isTerminal(w) {
		sp := newSpinner(w)
		sp.Start()
		defer sp.Stop()
	}
	s.Prime(ctx, primeDuration(interval))
}
