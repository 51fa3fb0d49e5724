package app

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/agbru/l3p/internal/config"
	apperrors "github.com/agbru/l3p/internal/errors"
	"github.com/agbru/l3p/internal/logging"
	"github.com/agbru/l3p/internal/metrics"
	"github.com/agbru/l3p/internal/scheduler"
	"github.com/agbru/l3p/internal/snapshot"
	"github.com/agbru/l3p/internal/sysmon"
	"github.com/agbru/l3p/internal/tray"
	"github.com/agbru/l3p/internal/tui"
	"github.com/agbru/l3p/internal/ui"
)

// Application represents the l3p application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	source      sysmon.Source
	backendFor  func(name string, logger logging.Logger) (tray.Backend, error)
	viewOptions tui.ViewOptions
	signals     bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSource replaces the gopsutil metric source.
func WithSource(src sysmon.Source) AppOption {
	return func(a *Application) { a.source = src }
}

// WithBackend replaces tray backend selection with a fixed backend.
func WithBackend(b tray.Backend) AppOption {
	return func(a *Application) {
		a.backendFor = func(string, logging.Logger) (tray.Backend, error) { return b, nil }
	}
}

// WithBackendSelector replaces tray backend selection.
func WithBackendSelector(fn func(name string, logger logging.Logger) (tray.Backend, error)) AppOption {
	return func(a *Application) { a.backendFor = fn }
}

// WithViewOptions sets the terminal wiring of the profile view.
func WithViewOptions(vo tui.ViewOptions) AppOption {
	return func(a *Application) { a.viewOptions = vo }
}

// WithoutSignals disables SIGINT/SIGTERM handling.
func WithoutSignals() AppOption {
	return func(a *Application) { a.signals = false }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:  errWriter,
		backendFor: tray.Select,
		signals:    true,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.source == nil {
		app.source = sysmon.NewGopsutilSource()
	}

	programName := "l3p"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, pflag.ErrHelp)
}

// session holds the components of one Run.
type session struct {
	cfg      config.AppConfig
	logger   *logging.ZerologAdapter
	counters *metrics.Counters
	store    *snapshot.Store
	sampler  *sysmon.Sampler
	group    *scheduler.Group

	backend   tray.Backend
	presenter *tray.Presenter
	view      *tui.View
	pace      *tui.Pace

	mu      sync.Mutex
	closing bool
	viewWG  sync.WaitGroup
}

// Run starts the configured presenters and blocks until the user exits,
// the context is canceled, or a required presenter fails. The returned
// error maps to an exit code with apperrors.ExitCodeFor.
func (a *Application) Run(ctx context.Context) error {
	if a.signals {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := a.setup()
	rt.logger.Info("starting", logging.String("mode", rt.cfg.Mode()), logging.String("version", DisplayVersion()))

	if rt.cfg.TrayEnabled() {
		backend, err := a.backendFor(rt.cfg.TrayBackend, rt.logger.With("tray"))
		if err != nil {
			return err
		}
		rt.backend = backend
	}

	prime(ctx, rt.sampler, rt.cfg.SampleInterval(), a.ErrWriter)
	rt.store.Publish(rt.sampler.Sample(ctx))

	if rt.backend != nil {
		rt.presenter = rt.newPresenter(ctx, cancel)
	}
	if err := rt.addLoops(); err != nil {
		return err
	}

	if rt.backend != nil {
		return rt.runTray(ctx, cancel)
	}
	return rt.runProfile(ctx)
}

func (a *Application) setup() *session {
	cfg := a.Config
	logging.SetLevel(cfg.Verbose)
	ui.InitTheme(cfg.NoColor)

	logs := logging.NewSwitchWriter(a.ErrWriter)
	logger := logging.NewLogger(logs, "l3p")
	counters := metrics.NewCounters()
	store := snapshot.NewStore(time.Now())

	rt := &session{
		cfg:      cfg,
		logger:   logger,
		counters: counters,
		store:    store,
		group: scheduler.NewGroup(
			scheduler.WithLogger(logger.With("scheduler")),
			scheduler.WithCounters(counters)),
	}
	rt.sampler = sysmon.New(a.source,
		sysmon.WithDiskPath(cfg.DiskPath),
		sysmon.WithDetails(rt.wantDetails),
		sysmon.WithCounters(counters),
		sysmon.WithLogger(logger.With("sampler")))

	if cfg.ProfileEnabled() {
		rt.pace = tui.NewPace(cfg.ProfileInterval)
		vo := a.viewOptions
		vo.Logs = logs
		vo.Logger = logger.With("profile")
		rt.view = tui.NewView(store, counters, tui.Options{
			Version:  DisplayVersion(),
			History:  cfg.History,
			DiskPath: rt.sampler.DiskPath(),
			Pace:     rt.pace,
		}, vo)
	}
	return rt
}

// wantDetails limits the extended readings to samples someone can see:
// always in profile-only mode, otherwise while the view is open.
func (rt *session) wantDetails() bool {
	if rt.view == nil {
		return false
	}
	return rt.cfg.ProfileOnly || rt.view.IsOpen()
}

// sampleInterval follows the fastest active presenter, including speed
// changes made from the profile view.
func (rt *session) sampleInterval() time.Duration {
	d := rt.cfg.TrayInterval
	if rt.backend == nil {
		d = rt.cfg.ProfileInterval
	}
	if rt.pace != nil {
		if rt.backend == nil {
			return rt.pace.Get()
		}
		d = min(d, rt.pace.Get())
	}
	return d
}

func (rt *session) addLoops() error {
	loops := []scheduler.Loop{{
		Name:     "sample",
		Interval: rt.cfg.SampleInterval(),
		Pace:     rt.sampleInterval,
		Task: func(ctx context.Context) error {
			rt.store.Publish(rt.sampler.Sample(ctx))
			return nil
		},
	}}
	if rt.presenter != nil {
		loops = append(loops, scheduler.Loop{
			Name:      "tray",
			Interval:  rt.cfg.TrayInterval,
			Task:      rt.presenter.Tick,
			Immediate: true,
		})
	}
	if rt.view != nil {
		loops = append(loops, scheduler.Loop{
			Name:     "profile",
			Interval: rt.cfg.ProfileInterval,
			Pace:     rt.pace.Get,
			Task:     rt.view.Tick,
		})
	}
	for _, l := range loops {
		if err := rt.group.Add(l); err != nil {
			return apperrors.WrapError(err, "register %s loop", l.Name)
		}
	}
	return nil
}

// newPresenter wires the tray menu: Show Profile opens the view when it is
// enabled, Exit cancels the run.
func (rt *session) newPresenter(ctx context.Context, exit context.CancelFunc) *tray.Presenter {
	var showProfile func()
	if rt.view != nil {
		showProfile = func() { rt.openProfile(ctx) }
	}
	return tray.NewPresenter(rt.backend, rt.store,
		tray.WithIconSize(rt.cfg.IconSize),
		tray.WithLogger(rt.logger.With("tray")),
		tray.WithCounters(rt.counters),
		tray.WithShowProfile(showProfile),
		tray.WithExit(exit))
}

// runTray drives the tray on the calling goroutine until Exit, a signal or
// a fatal presenter error. Shutdown stops the loops, waits for in-flight
// ticks, closes the profile view, then releases the backend.
func (rt *session) runTray(ctx context.Context, cancel context.CancelFunc) error {
	var startErr error
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		rt.shutdown()
		rt.backend.Stop()
	}()

	runErr := rt.backend.Run(func() {
		if err := rt.presenter.Start(); err != nil {
			startErr = apperrors.NewUIError("tray", err)
			cancel()
			return
		}
		if err := rt.group.Start(ctx); err != nil {
			startErr = err
			cancel()
			return
		}
		rt.logger.Info("tray ready", logging.String("backend", rt.backend.Name()))
	})
	cancel()
	<-shutdownDone

	if startErr != nil {
		return startErr
	}
	if runErr != nil {
		return apperrors.NewUIError("tray", runErr)
	}
	return nil
}

// openProfile opens the profile view unless it is already showing.
func (rt *session) openProfile(ctx context.Context) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.closing || rt.view.IsOpen() || ctx.Err() != nil {
		return
	}
	rt.viewWG.Add(1)
	go func() {
		defer rt.viewWG.Done()
		if err := rt.view.Open(ctx); err != nil && !errors.Is(err, tui.ErrAlreadyOpen) {
			rt.logger.Warn("profile view failed", logging.Err(err))
		}
	}()
}

// runProfile shows the profile view on the calling goroutine; closing it
// ends the run.
func (rt *session) runProfile(ctx context.Context) error {
	if err := rt.group.Start(ctx); err != nil {
		return err
	}
	err := rt.view.Open(ctx)
	rt.shutdown()
	return err
}

func (rt *session) shutdown() {
	rt.group.Stop()
	if err := rt.group.Wait(); err != nil {
		rt.logger.Warn("loops ended with error", logging.Err(err))
	}
	if rt.view != nil {
		rt.mu.Lock()
		rt.closing = true
		rt.mu.Unlock()
		rt.view.Close()
		rt.viewWG.Wait()
	}
	if rt.presenter != nil {
		rt.presenter.Stop()
	}
	rt.logger.Debug("stopped")
}
