package runtime

import (
	"github.com/vango-dev/minivue/pkg/reactivity"
)

// PublicInstance is the view of an instance render functions read from.
// Lookups go to setup bindings, then props, then the $-prefixed accessors.
type PublicInstance struct {
	inst *Instance
}

var publicProperties = map[string]func(*Instance) any{
	"$el":    func(i *Instance) any { return i.vnode.el },
	"$slots": func(i *Instance) any { return i.slots },
	"$props": func(i *Instance) any { return i.props },
	"$emit": func(i *Instance) any {
		return func(event string, args ...any) { i.Emit(event, args...) }
	},
	"$parent": func(i *Instance) any {
		if i.parent == nil {
			return nil
		}
		return i.parent.proxy
	},
}

// Get resolves key for a render function.
func (p *PublicInstance) Get(key string) any {
	inst := p.inst
	if inst.setupState != nil {
		if v, ok := inst.setupState.Lookup(key); ok {
			return v
		}
	}
	if v, ok := inst.props[key]; ok {
		return reactivity.Unref(v)
	}
	if f, ok := publicProperties[key]; ok {
		return f(inst)
	}
	return nil
}

// Set writes a setup binding. Props and $-accessors are not writable.
func (p *PublicInstance) Set(key string, value any) bool {
	inst := p.inst
	if inst.setupState != nil {
		if _, ok := inst.setupState.Lookup(key); ok {
			return inst.setupState.Set(key, value)
		}
	}
	inst.renderer.logger.Warn("attempted to set a non-setup binding",
		"component", inst.Name(), "key", key)
	return false
}

// Instance returns the underlying instance.
func (p *PublicInstance) Instance() *Instance { return p.inst }
