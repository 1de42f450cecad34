package field

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Scheduler runs a callback before the host's next repaint.
type Scheduler interface {
	RequestFrame(fn func())
}

type Observer interface {
	OnFrame(stats FrameStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(FrameStats)

func (f ObserverFunc) OnFrame(stats FrameStats) { f(stats) }

// QueueScheduler holds the pending frame callback until the host pumps it.
// Hosts with their own loop (bubbletea ticks, raylib, ebiten Draw) call Pump
// once per repaint.
type QueueScheduler struct {
	next func()
}

func (q *QueueScheduler) RequestFrame(fn func()) { q.next = fn }

func (q *QueueScheduler) Pending() bool { return q.next != nil }

// Pump runs the pending callback, if any.
func (q *QueueScheduler) Pump() bool {
	fn := q.next
	if fn == nil {
		return false
	}
	q.next = nil
	fn()
	return true
}

// Animator binds a field to a surface and keeps requesting frames.
type Animator struct {
	field     *Field
	surface   Surface
	sched     Scheduler
	observers []Observer
	last      FrameStats
}

// NewAnimator validates the host wiring. A missing surface is fatal to setup
// and logged here.
func NewAnimator(f *Field, s Surface, sched Scheduler) (*Animator, error) {
	if s == nil {
		log.Printf("field: cannot start animation: %v", ErrMissingSurface)
		return nil, &SetupError{Component: "animator", Wrapped: ErrMissingSurface}
	}
	if sched == nil {
		log.Printf("field: cannot start animation: %v", ErrMissingScheduler)
		return nil, &SetupError{Component: "animator", Wrapped: ErrMissingScheduler}
	}
	if f == nil {
		return nil, &SetupError{Component: "animator", Wrapped: fmt.Errorf("nil field")}
	}
	return &Animator{field: f, surface: s, sched: sched}, nil
}

func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }

func (a *Animator) Field() *Field { return a.field }

// Last returns the stats of the most recent frame.
func (a *Animator) Last() FrameStats { return a.last }

// Start renders the first frame immediately; every frame requests the next.
func (a *Animator) Start() { a.step() }

func (a *Animator) step() {
	a.last = a.field.Frame(a.surface)
	for _, o := range a.observers {
		o.OnFrame(a.last)
	}
	a.sched.RequestFrame(a.step)
}

// RunConfig controls the headless runner. FPS 0 renders as fast as possible;
// Frames 0 runs until the context ends.
type RunConfig struct {
	FPS    int
	Frames int
}

func (c RunConfig) validate() error {
	if c.FPS < 0 {
		return fmt.Errorf("fps must be non-negative, got %d", c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", c.Frames)
	}
	if c.FPS == 0 && c.Frames == 0 {
		return fmt.Errorf("unbounded run needs a frame rate")
	}
	return nil
}

// Run drives the field headlessly on a ticker until the context is done or
// cfg.Frames frames have rendered. It returns the number of frames rendered.
func Run(ctx context.Context, f *Field, s Surface, cfg RunConfig, observers ...Observer) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}

	sched := &QueueScheduler{}
	a, err := NewAnimator(f, s, sched)
	if err != nil {
		return 0, err
	}
	for _, o := range observers {
		a.AddObserver(o)
	}

	var tick <-chan time.Time
	if cfg.FPS > 0 {
		t := time.NewTicker(time.Second / time.Duration(cfg.FPS))
		defer t.Stop()
		tick = t.C
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	a.Start()
	n := 1
	for cfg.Frames == 0 || n < cfg.Frames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			default:
			}
		}
		sched.Pump()
		n++
	}
	return n, nil
}
