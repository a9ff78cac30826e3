package runtime

import (
	"github.com/vango-dev/minivue/pkg/reactivity"
)

// SetupContext is handed to Setup. Provide, Inject and Instance are only
// valid while Setup runs; Emit stays valid for the instance's lifetime.
type SetupContext struct {
	instance *Instance
	closed   bool
}

func (c *SetupContext) open(op string) bool {
	if c.closed {
		c.instance.renderer.logger.Warn(
			op+" called outside of setup",
			"code", "R004",
			"component", c.instance.Name(),
		)
		return false
	}
	return true
}

// Instance returns the instance being set up.
func (c *SetupContext) Instance() *Instance {
	if !c.open("Instance") {
		return nil
	}
	return c.instance
}

// System returns the reactive system the instance belongs to.
func (c *SetupContext) System() *reactivity.System {
	return c.instance.renderer.sys
}

// Ref is shorthand for System().Ref.
func (c *SetupContext) Ref(v any) *reactivity.Ref {
	return c.System().Ref(v)
}

// Reactive is shorthand for System().Reactive.
func (c *SetupContext) Reactive(m map[string]any) *reactivity.Object {
	return c.System().Reactive(m)
}

// Computed is shorthand for System().Computed.
func (c *SetupContext) Computed(getter func() any) *reactivity.Computed {
	return c.System().Computed(getter)
}

// NextTick runs fn after the next flush.
func (c *SetupContext) NextTick(fn func()) {
	c.instance.renderer.sched.NextTick(fn)
}

// Emit calls the onXxx handler the parent passed for event.
func (c *SetupContext) Emit(event string, args ...any) {
	c.instance.Emit(event, args...)
}

// Provide makes value available to descendants under key.
func (c *SetupContext) Provide(key, value any) {
	if !c.open("Provide") {
		return
	}
	inst := c.instance
	if inst.provides == nil {
		inst.provides = make(map[any]any)
	}
	inst.provides[key] = value
}

// Inject looks key up on the nearest ancestor that provided it, then on
// the app. A func() any default is called to produce the value.
func (c *SetupContext) Inject(key any, def ...any) any {
	if !c.open("Inject") {
		return nil
	}
	if v, ok := c.instance.lookupProvided(key); ok {
		return v
	}
	if len(def) > 0 {
		if f, ok := def[0].(func() any); ok {
			return f()
		}
		return def[0]
	}
	c.instance.renderer.logger.Warn("injection not found",
		"component", c.instance.Name(), "key", key)
	return nil
}

func (i *Instance) lookupProvided(key any) (any, bool) {
	for p := i.parent; p != nil; p = p.parent {
		if v, ok := p.provides[key]; ok {
			return v, true
		}
	}
	if i.app != nil {
		if v, ok := i.app.provides[key]; ok {
			return v, true
		}
	}
	return nil, false
}
