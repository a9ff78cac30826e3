package reactivity

import (
	"log/slog"
	"reflect"
	"unsafe"

	"github.com/vango-dev/minivue/internal/errors"
)

// System is the explicit reactive context. It owns the dependency map and
// the running-effect state that tracking reads consult.
type System struct {
	// targets maps a raw target's identity to its per-key deps.
	targets map[unsafe.Pointer]map[string]*Dep

	// activeEffect is the effect whose function is currently executing.
	activeEffect *ReactiveEffect

	// shouldTrack gates Track while activeEffect is set.
	shouldTrack bool

	reactiveCache        map[unsafe.Pointer]*Object
	readonlyCache        map[unsafe.Pointer]*Object
	shallowReadonlyCache map[unsafe.Pointer]*Object

	logger *slog.Logger
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSystem creates an empty reactive system.
func NewSystem(opts ...Option) *System {
	s := &System{
		targets:              make(map[unsafe.Pointer]map[string]*Dep),
		reactiveCache:        make(map[unsafe.Pointer]*Object),
		readonlyCache:        make(map[unsafe.Pointer]*Object),
		shallowReadonlyCache: make(map[unsafe.Pointer]*Object),
		logger:               slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Logger returns the system's diagnostic logger.
func (s *System) Logger() *slog.Logger {
	return s.logger
}

// IsTracking reports whether a read right now would subscribe an effect.
func (s *System) IsTracking() bool {
	return s.shouldTrack && s.activeEffect != nil
}

// ActiveEffect returns the effect currently running, or nil.
func (s *System) ActiveEffect() *ReactiveEffect {
	return s.activeEffect
}

// PauseTracking disables tracking until the returned func is called.
func (s *System) PauseTracking() (resume func()) {
	prev := s.shouldTrack
	s.shouldTrack = false
	return func() { s.shouldTrack = prev }
}

// Track records that the active effect read key of target.
func (s *System) Track(target map[string]any, key string) {
	if !s.IsTracking() || target == nil {
		return
	}

	id := identity(target)
	deps, ok := s.targets[id]
	if !ok {
		deps = make(map[string]*Dep)
		s.targets[id] = deps
	}
	dep, ok := deps[key]
	if !ok {
		dep = NewDep()
		deps[key] = dep
	}

	s.TrackEffects(dep)
}

// TrackEffects subscribes the active effect to dep.
// A repeat subscription is a no-op.
func (s *System) TrackEffects(dep *Dep) {
	if !s.IsTracking() {
		return
	}
	e := s.activeEffect
	if !dep.add(e) {
		return
	}
	e.deps = append(e.deps, dep)
}

// Trigger notifies the effects that read key of target.
// Targets or keys that were never tracked have nothing to notify.
func (s *System) Trigger(target map[string]any, key string) {
	if target == nil {
		return
	}
	deps, ok := s.targets[identity(target)]
	if !ok {
		return
	}
	dep, ok := deps[key]
	if !ok {
		return
	}
	s.TriggerEffects(dep)
}

// TriggerEffects runs or schedules every effect subscribed to dep, in
// subscription order. The running effect is skipped so an effect that
// writes what it reads does not recurse into itself.
func (s *System) TriggerEffects(dep *Dep) {
	for _, e := range dep.snapshot() {
		if e == s.activeEffect {
			continue
		}
		if e.scheduler != nil {
			e.scheduler()
		} else {
			e.Run()
		}
	}
}

// DepFor returns the dep for target and key, or nil if it was never tracked.
func (s *System) DepFor(target map[string]any, key string) *Dep {
	deps, ok := s.targets[identity(target)]
	if !ok {
		return nil
	}
	return deps[key]
}

func (s *System) warn(code string, attrs ...any) {
	e := errors.New(code)
	s.logger.Warn(e.Message, append([]any{"code", e.Code}, attrs...)...)
}

// identity returns the address of the map header, stable for the map's
// lifetime and shared by every copy of the map value.
func identity(m map[string]any) unsafe.Pointer {
	return reflect.ValueOf(m).UnsafePointer()
}
