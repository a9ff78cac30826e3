package runtime

import (
	"sync/atomic"

	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/scheduler"
)

var instanceIDCounter atomic.Uint64

// Instance is the runtime state of one mounted component.
type Instance struct {
	uid      uint64
	renderer *Renderer
	def      *Component
	vnode    *ComponentNode
	parent   *Instance
	app      *App

	props      Props
	slots      map[string]SlotFunc
	setupState *reactivity.RefProxy
	render     RenderFunc
	proxy      *PublicInstance

	subTree     VNode
	isMounted   bool
	isUnmounted bool

	// provides holds this instance's own provided values; nil until the
	// first Provide.
	provides map[any]any

	// next is the vnode a parent-driven update is about to render.
	next *ComponentNode

	update *reactivity.ReactiveEffect
	job    *scheduler.Job
}

func (r *Renderer) createComponentInstance(vnode *ComponentNode, parent *Instance) *Instance {
	inst := &Instance{
		uid:      instanceIDCounter.Add(1),
		renderer: r,
		def:      vnode.Component,
		vnode:    vnode,
		parent:   parent,
		app:      vnode.app,
	}
	if parent != nil {
		inst.app = parent.app
	}
	inst.proxy = &PublicInstance{inst: inst}
	return inst
}

// UID returns the instance's unique id.
func (i *Instance) UID() uint64 { return i.uid }

// Name returns the component name.
func (i *Instance) Name() string { return i.def.displayName() }

// Component returns the instance's definition.
func (i *Instance) Component() *Component { return i.def }

// Parent returns the parent instance, nil for the root.
func (i *Instance) Parent() *Instance { return i.parent }

// VNode returns the vnode currently representing the instance.
func (i *Instance) VNode() *ComponentNode { return i.vnode }

// Props returns the resolved props.
func (i *Instance) Props() Props { return i.props }

// Slots returns the normalized slot functions.
func (i *Instance) Slots() map[string]SlotFunc { return i.slots }

// SetupState returns the bindings returned by Setup, or nil.
func (i *Instance) SetupState() *reactivity.RefProxy { return i.setupState }

// SubTree returns the last rendered vnode tree.
func (i *Instance) SubTree() VNode { return i.subTree }

// IsMounted reports whether the first render has been patched in.
func (i *Instance) IsMounted() bool { return i.isMounted }

// IsUnmounted reports whether the instance has been torn down.
func (i *Instance) IsUnmounted() bool { return i.isUnmounted }

// Proxy returns the public instance handed to render functions.
func (i *Instance) Proxy() *PublicInstance { return i.proxy }

// Update re-renders the instance synchronously.
func (i *Instance) Update() {
	if i.update != nil && !i.isUnmounted {
		i.update.Run()
	}
}

func (i *Instance) setupComponent() {
	i.initProps(i.vnode.Props)
	i.initSlots(i.vnode)
	i.setupStatefulComponent()
}

// initProps copies the vnode props, then fills declared defaults.
func (i *Instance) initProps(raw Props) {
	if i.props == nil {
		i.props = make(Props, len(raw))
	}
	assignProps(i.props, raw, i.def.Props)
}

// assignProps rewrites dst in place so wrappers created over it in setup
// keep seeing current values.
func assignProps(dst, raw, defaults Props) {
	for k := range dst {
		if _, ok := raw[k]; !ok {
			delete(dst, k)
		}
	}
	for k, v := range raw {
		if k == "key" {
			continue
		}
		dst[k] = v
	}
	for k, v := range defaults {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}

func (i *Instance) initSlots(vnode *ComponentNode) {
	if !vnode.Shape().Has(ShapeSlotChildren) {
		i.slots = nil
		return
	}
	i.slots = normalizeObjectSlots(vnode.Slots)
}

func (i *Instance) setupStatefulComponent() {
	r := i.renderer
	if setup := i.def.Setup; setup != nil {
		ctx := &SetupContext{instance: i}
		resume := r.sys.PauseTracking()
		result := func() any {
			defer func() {
				resume()
				ctx.closed = true
			}()
			return setup(r.sys.ShallowReadonly(map[string]any(i.props)), ctx)
		}()
		i.handleSetupResult(result)
	}
	i.finishComponentSetup()
}

func (i *Instance) handleSetupResult(result any) {
	switch res := result.(type) {
	case nil:
	case map[string]any:
		i.setupState = i.renderer.sys.ProxyRefs(res)
	case RenderFunc:
		i.render = res
	case func(RenderContext) VNode:
		i.render = res
	default:
		i.renderer.logger.Warn("setup returned an unsupported value",
			"component", i.Name(), "type", typeName(result))
	}
}

func (i *Instance) finishComponentSetup() {
	if i.render != nil {
		return
	}
	if i.def.Render != nil {
		i.render = i.def.Render
		return
	}
	i.render = i.renderer.compileComponent(i.def)
}

// updateComponentPreRender swaps in the vnode a parent-driven update brought.
func (i *Instance) updateComponentPreRender(next *ComponentNode) {
	next.instance = i
	i.vnode = next
	i.next = nil
	assignProps(i.props, next.Props, i.def.Props)
	i.initSlots(next)
}
