package reactivity

import "sync/atomic"

var effectIDCounter atomic.Uint64

// ReactiveEffect is a re-runnable computation subscribed to the reactive
// reads it performs.
//
// State machine: active until Stop, then inactive for good. An inactive
// effect still runs its function when asked, without tracking.
type ReactiveEffect struct {
	id  uint64
	sys *System
	fn  func() any

	scheduler func()
	onStop    func()

	// deps are the sets this effect joined, kept for cleanup.
	deps   []*Dep
	active bool
}

// NewEffect creates an active effect without running it.
// A non-nil scheduler is called on trigger instead of Run.
func (s *System) NewEffect(fn func() any, scheduler func()) *ReactiveEffect {
	return &ReactiveEffect{
		id:        effectIDCounter.Add(1),
		sys:       s,
		fn:        fn,
		scheduler: scheduler,
		active:    true,
	}
}

// ID returns the effect's unique identifier.
func (e *ReactiveEffect) ID() uint64 {
	return e.id
}

// Active reports whether the effect still tracks and receives triggers.
func (e *ReactiveEffect) Active() bool {
	return e.active
}

// DepCount returns the number of deps the effect is subscribed to.
func (e *ReactiveEffect) DepCount() int {
	return len(e.deps)
}

// OnStop registers a callback invoked once when the effect is stopped.
func (e *ReactiveEffect) OnStop(fn func()) {
	e.onStop = fn
}

// Run executes the effect function. An active effect becomes the running
// effect for the duration of the call, and its previous subscriptions are
// replaced by the reads this run performs.
func (e *ReactiveEffect) Run() any {
	if !e.active {
		return e.fn()
	}

	s := e.sys
	prevEffect, prevTrack := s.activeEffect, s.shouldTrack
	defer func() {
		s.activeEffect, s.shouldTrack = prevEffect, prevTrack
	}()

	e.cleanup()
	s.activeEffect = e
	s.shouldTrack = true

	return e.fn()
}

// Stop unsubscribes the effect from every dep and deactivates it.
// Calling Stop again is a no-op.
func (e *ReactiveEffect) Stop() {
	if !e.active {
		return
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.active = false
}

func (e *ReactiveEffect) cleanup() {
	for _, dep := range e.deps {
		dep.remove(e)
	}
	e.deps = e.deps[:0]
}

// EffectOption configures an effect created with System.Effect.
type EffectOption func(*effectOptions)

type effectOptions struct {
	scheduler func()
	onStop    func()
	lazy      bool
}

// WithScheduler calls fn on trigger instead of re-running the effect.
func WithScheduler(fn func()) EffectOption {
	return func(o *effectOptions) { o.scheduler = fn }
}

// WithOnStop registers a callback invoked when the effect is stopped.
func WithOnStop(fn func()) EffectOption {
	return func(o *effectOptions) { o.onStop = fn }
}

// WithLazy skips the initial run.
func WithLazy() EffectOption {
	return func(o *effectOptions) { o.lazy = true }
}

// Runner is the handle returned by System.Effect.
type Runner struct {
	effect *ReactiveEffect
}

// Run re-runs the effect function and returns its result.
func (r *Runner) Run() any {
	return r.effect.Run()
}

// Effect returns the underlying effect.
func (r *Runner) Effect() *ReactiveEffect {
	return r.effect
}

// Effect creates an effect from fn, runs it once unless WithLazy is given,
// and returns its runner.
func (s *System) Effect(fn func(), opts ...EffectOption) *Runner {
	var o effectOptions
	for _, opt := range opts {
		opt(&o)
	}

	e := s.NewEffect(func() any {
		fn()
		return nil
	}, o.scheduler)
	e.onStop = o.onStop

	if !o.lazy {
		e.Run()
	}
	return &Runner{effect: e}
}

// Stop stops the effect behind r.
func Stop(r *Runner) {
	if r != nil {
		r.effect.Stop()
	}
}
