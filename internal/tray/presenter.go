package tray

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agbru/l3p/internal/glyph"
	"github.com/agbru/l3p/internal/logging"
	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/snapshot"
)

// State is the lifecycle state of a Presenter.
type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Menu item IDs.
const (
	ItemShowProfile = "show-profile"
	ItemExit        = "exit"
)

// ErrNotStopped is returned by Start on a presenter that is already running.
var ErrNotStopped = errors.New("tray presenter already running")

// Update is a fully rendered tray state, ready to apply.
type Update struct {
	Icon    []byte
	Tooltip string
	Taken   time.Time
}

// Presenter renders the latest snapshot into the tray on each tick.
//
// Ticks run on the scheduler goroutine and only render; the finished
// Update is handed to a dedicated apply goroutine over a one-slot channel
// where a newer update replaces one not yet applied.
type Presenter struct {
	backend  Backend
	store    *snapshot.Store
	iconSize int
	encode   func(image.Image) ([]byte, error)
	logger   logging.Logger
	counters *metrics.Counters

	onShowProfile func()
	onExit        func()

	state   atomic.Int32
	updates chan Update
	mu      sync.Mutex
	done    chan struct{}
	applied chan struct{}
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithIconSize sets the glyph edge length.
func WithIconSize(size int) Option {
	return func(p *Presenter) { p.iconSize = size }
}

// WithShowProfile sets the "Show Profile" action. Without it the item is a
// no-op.
func WithShowProfile(fn func()) Option {
	return func(p *Presenter) { p.onShowProfile = fn }
}

// WithExit sets the "Exit" action.
func WithExit(fn func()) Option {
	return func(p *Presenter) { p.onExit = fn }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Presenter) { p.logger = l }
}

// WithCounters records icon update failures in c.
func WithCounters(c *metrics.Counters) Option {
	return func(p *Presenter) { p.counters = c }
}

// WithEncoder replaces EncodeIcon.
func WithEncoder(fn func(image.Image) ([]byte, error)) Option {
	return func(p *Presenter) { p.encode = fn }
}

// NewPresenter creates a stopped presenter over backend and store.
func NewPresenter(backend Backend, store *snapshot.Store, opts ...Option) *Presenter {
	p := &Presenter{
		backend:  backend,
		store:    store,
		iconSize: glyph.DefaultSize,
		encode:   EncodeIcon,
		logger:   logging.Nop(),
		updates:  make(chan Update, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current lifecycle state.
func (p *Presenter) State() State { return State(p.state.Load()) }

// Start registers the menu, applies an initial placeholder and launches
// the apply goroutine.
func (p *Presenter) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.State() != Stopped {
		return ErrNotStopped
	}

	items := []MenuItem{
		{ID: ItemShowProfile, Title: "Show Profile", Tooltip: "Open the detailed profile view", OnClick: p.showProfile},
		{ID: ItemExit, Title: "Exit", Tooltip: "Quit L3P", OnClick: p.exit, SeparatorBefore: true},
	}
	if err := p.backend.RegisterMenu(items); err != nil {
		return fmt.Errorf("register tray menu: %w", err)
	}
	if err := p.backend.SetTooltip("L3P - Loading..."); err != nil {
		p.logger.Warn("initial tooltip failed", logging.Err(err))
	}

	p.done = make(chan struct{})
	p.applied = make(chan struct{})
	p.state.Store(int32(Running))
	go p.applyLoop(p.done, p.applied)
	p.logger.Debug("tray presenter started", logging.String("backend", p.backend.Name()))
	return nil
}

// Stop ends the apply goroutine and waits for an in-progress apply. The
// backend itself is released by the caller.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CompareAndSwap(int32(Running), int32(Stopped)) {
		return
	}
	close(p.done)
	<-p.applied
	p.logger.Debug("tray presenter stopped")
}

// Tick renders the latest snapshot and offers it to the apply goroutine.
// It is a no-op while stopped.
func (p *Presenter) Tick(ctx context.Context) error {
	if p.State() != Running {
		return nil
	}
	u, err := p.Render(p.store.Latest())
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	p.offer(u)
	return nil
}

// Render produces the Update for s without touching the backend.
func (p *Presenter) Render(s snapshot.Snapshot) (Update, error) {
	icon, err := p.encode(glyph.Render(s, p.iconSize))
	if err != nil {
		return Update{}, fmt.Errorf("encode tray icon: %w", err)
	}
	return Update{Icon: icon, Tooltip: glyph.Tooltip(s), Taken: s.Time}, nil
}

// offer places u in the one-slot channel, replacing an unapplied update.
func (p *Presenter) offer(u Update) {
	for {
		select {
		case p.updates <- u:
			return
		default:
		}
		select {
		case <-p.updates:
		default:
		}
	}
}

func (p *Presenter) applyLoop(done <-chan struct{}, applied chan<- struct{}) {
	defer close(applied)
	for {
		select {
		case <-done:
			return
		case u := <-p.updates:
			p.apply(u)
		}
	}
}

// apply pushes u to the backend. Failures are logged and counted; the
// next tick retries with a fresh update.
func (p *Presenter) apply(u Update) {
	defer func() {
		if r := recover(); r != nil {
			p.counters.IconFailure()
			p.logger.Warn("tray update panicked", logging.String("panic", fmt.Sprint(r)))
		}
	}()
	if err := p.backend.SetIcon(u.Icon); err != nil {
		p.counters.IconFailure()
		p.logger.Warn("tray icon update failed", logging.Err(err))
		return
	}
	if err := p.backend.SetTooltip(u.Tooltip); err != nil {
		p.counters.IconFailure()
		p.logger.Warn("tray tooltip update failed", logging.Err(err))
	}
}

func (p *Presenter) showProfile() {
	if p.onShowProfile == nil {
		p.logger.Info("profile view disabled in tray-only mode")
		return
	}
	p.onShowProfile()
}

func (p *Presenter) exit() {
	if p.onExit != nil {
		p.onExit()
	}
}
