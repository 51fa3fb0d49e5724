package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	apperrors "github.com/agbru/l3p/internal/errors"
	"github.com/agbru/l3p/internal/logging"
	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/snapshot"
)

// ErrAlreadyOpen is returned by Open while the view is showing.
var ErrAlreadyOpen = errors.New("profile view already open")

// ViewOptions wires the view to its terminal and log stream. Zero values
// select stdin, stdout and a real terminal check.
type ViewOptions struct {
	In         io.Reader
	Out        io.Writer
	IsTerminal func() bool
	// Logs, when set, is redirected into the log panel while the view is open.
	Logs   *logging.SwitchWriter
	Logger logging.Logger
}

// View is the detail presenter. It owns at most one bubbletea program at a
// time; Tick feeds it from the snapshot store.
type View struct {
	store    *snapshot.Store
	counters *metrics.Counters
	self     *metrics.SelfCollector
	opts     Options
	vo       ViewOptions

	mu  sync.Mutex
	ref *programRef
}

// NewView creates a closed profile view.
func NewView(store *snapshot.Store, counters *metrics.Counters, opts Options, vo ViewOptions) *View {
	if opts.Pace == nil {
		opts.Pace = NewPace(time.Second)
	}
	if vo.In == nil {
		vo.In = os.Stdin
	}
	if vo.Out == nil {
		vo.Out = os.Stdout
	}
	if vo.IsTerminal == nil {
		vo.IsTerminal = func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		}
	}
	if vo.Logger == nil {
		vo.Logger = logging.Nop()
	}
	return &View{
		store:    store,
		counters: counters,
		self:     metrics.NewSelfCollector(),
		opts:     opts,
		vo:       vo,
	}
}

// Pace returns the view's adjustable refresh interval.
func (v *View) Pace() *Pace { return v.opts.Pace }

// IsOpen reports whether a program is running.
func (v *View) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ref != nil
}

// Open shows the view and blocks until it is closed by the user, by Close
// or by ctx. A missing terminal is reported as a UIError.
func (v *View) Open(ctx context.Context) error {
	if !v.vo.IsTerminal() {
		return apperrors.NewUIError("profile", errors.New("a terminal is required"))
	}

	v.mu.Lock()
	if v.ref != nil {
		v.mu.Unlock()
		return ErrAlreadyOpen
	}
	ref := &programRef{}
	v.ref = ref
	v.mu.Unlock()

	defer func() {
		ref.SetProgram(nil)
		v.mu.Lock()
		v.ref = nil
		v.mu.Unlock()
	}()

	initTUIStyles()

	model := NewModel(v.opts)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
		tea.WithInput(v.vo.In),
		tea.WithOutput(v.vo.Out),
	)
	ref.SetProgram(p)

	v.vo.Logger.Debug("profile view opened")
	if v.vo.Logs != nil {
		lw := newLogWriter(ref)
		prev := v.vo.Logs.Swap(lw)
		defer func() {
			v.vo.Logs.Swap(prev)
			lw.Close()
			v.vo.Logger.Debug("profile view closed")
		}()
	} else {
		defer v.vo.Logger.Debug("profile view closed")
	}

	go ref.Send(v.message())

	_, err := p.Run()
	if err == nil || errors.Is(err, tea.ErrInterrupted) ||
		(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return nil
	}
	return apperrors.WrapError(err, "profile view")
}

// Tick posts the latest snapshot to the open program. It does nothing while
// the view is closed.
func (v *View) Tick(context.Context) error {
	v.mu.Lock()
	ref := v.ref
	v.mu.Unlock()
	if ref == nil || !ref.Attached() {
		return nil
	}
	ref.Send(v.message())
	return nil
}

// Close asks the open program, if any, to exit.
func (v *View) Close() {
	v.mu.Lock()
	ref := v.ref
	v.mu.Unlock()
	if ref != nil {
		ref.Quit()
	}
}

func (v *View) message() SnapshotMsg {
	cur, prev := v.store.Pair()
	return SnapshotMsg{
		Current:  cur,
		Previous: prev,
		Counters: v.counters.Summarize(),
		Self:     v.self.Snapshot(),
	}
}
