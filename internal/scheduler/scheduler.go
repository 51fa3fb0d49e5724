package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/l3p/internal/logging"
	"github.com/agbru/l3p/internal/metrics"
)

const tracerName = "github.com/agbru/l3p/internal/scheduler"

// Task is the body of one tick.
type Task func(ctx context.Context) error

// Loop describes one fixed-interval refresh loop.
type Loop struct {
	// Name identifies the loop in logs, spans and counters.
	Name string
	// Interval is the minimum spacing between tick starts.
	Interval time.Duration
	// Pace, when set, is consulted before every wait and overrides
	// Interval. It lets a view change its own refresh speed.
	Pace func() time.Duration
	// Task is run on every tick.
	Task Task
	// Immediate runs the first tick at start instead of after one interval.
	Immediate bool
}

func (l Loop) interval() time.Duration {
	if l.Pace != nil {
		if d := l.Pace(); d > 0 {
			return d
		}
	}
	return l.Interval
}

func (l Loop) validate() error {
	if l.Name == "" {
		return errors.New("loop has no name")
	}
	if l.Task == nil {
		return fmt.Errorf("loop %q has no task", l.Name)
	}
	if l.Interval <= 0 {
		return fmt.Errorf("loop %q: interval must be positive, got %v", l.Name, l.Interval)
	}
	return nil
}

// Group runs a set of loops until Stop is called or the parent context ends.
type Group struct {
	logger   logging.Logger
	counters *metrics.Counters
	tracer   trace.Tracer

	mu      sync.Mutex
	loops   []Loop
	cancel  context.CancelFunc
	eg      *errgroup.Group
	started bool
}

// Option configures a Group.
type Option func(*Group)

// WithLogger sets the logger for tick failures.
func WithLogger(l logging.Logger) Option {
	return func(g *Group) { g.logger = l }
}

// WithCounters records tick outcomes in c.
func WithCounters(c *metrics.Counters) Option {
	return func(g *Group) { g.counters = c }
}

// WithTracerProvider overrides the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Group) { g.tracer = tp.Tracer(tracerName) }
}

// NewGroup creates an empty Group.
func NewGroup(opts ...Option) *Group {
	g := &Group{
		logger: logging.Nop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add registers a loop. It fails once the group has started or when the
// loop is malformed.
func (g *Group) Add(l Loop) error {
	if err := l.validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return fmt.Errorf("loop %q added after start", l.Name)
	}
	g.loops = append(g.loops, l)
	return nil
}

// Start launches every registered loop in its own goroutine.
func (g *Group) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return errors.New("scheduler already started")
	}
	g.started = true

	ctx, g.cancel = context.WithCancel(ctx)
	g.eg = &errgroup.Group{}
	for _, l := range g.loops {
		g.eg.Go(func() error {
			g.run(ctx, l)
			return nil
		})
	}
	return nil
}

// Stop signals every loop to exit. It does not wait; see Wait.
func (g *Group) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
}

// Wait blocks until every loop has returned, including any in-flight tick.
func (g *Group) Wait() error {
	g.mu.Lock()
	eg := g.eg
	g.mu.Unlock()
	if eg == nil {
		return nil
	}
	return eg.Wait()
}

func (g *Group) run(ctx context.Context, l Loop) {
	g.logger.Debug("loop started", logging.String("loop", l.Name), logging.Duration("interval", l.interval()))
	defer g.logger.Debug("loop stopped", logging.String("loop", l.Name))

	timer := time.NewTimer(0)
	if !l.Immediate {
		timer.Reset(l.interval())
	}
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		start := time.Now()
		err := g.tick(ctx, l)
		elapsed := time.Since(start)
		g.counters.ObserveTick(l.Name, elapsed, err != nil)
		if err != nil && ctx.Err() == nil {
			g.logger.Warn("tick failed", logging.String("loop", l.Name), logging.Err(err))
		}

		timer.Reset(max(l.interval()-elapsed, 0))
	}
}

// tick runs one Task inside a span, converting a panic into an error.
func (g *Group) tick(ctx context.Context, l Loop) (err error) {
	ctx, span := g.tracer.Start(ctx, "tick "+l.Name,
		trace.WithAttributes(attribute.String("l3p.loop", l.Name)))
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s tick: %v", l.Name, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	return l.Task(ctx)
}
