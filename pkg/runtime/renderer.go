package runtime

import (
	"log/slog"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/scheduler"
	"github.com/vango-dev/minivue/pkg/telemetry"
)

// Renderer reconciles vnode trees against a Host.
//
// A Renderer is not safe for concurrent use. Drive it from one goroutine,
// typically a scheduler.Loop.
type Renderer struct {
	host  Host
	sys   *reactivity.System
	sched *scheduler.Scheduler

	compile  CompileFunc
	compiled map[*Component]RenderFunc

	// roots maps a container to the vnode last rendered into it.
	roots map[HostNode]VNode

	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSystem sets the reactive system component state lives in.
func WithSystem(s *reactivity.System) Option {
	return func(r *Renderer) { r.sys = s }
}

// WithScheduler sets the scheduler component updates are queued on.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(r *Renderer) { r.sched = s }
}

// WithCompiler registers the template compiler used for components that
// only declare a Template.
func WithCompiler(fn CompileFunc) Option {
	return func(r *Renderer) { r.compile = fn }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithMetrics records host operations and render timings.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithTracer wraps component mounts and updates in spans.
func WithTracer(t *telemetry.Tracer) Option {
	return func(r *Renderer) { r.tracer = t }
}

// NewRenderer creates a renderer over host. Without WithSystem or
// WithScheduler it creates its own.
func NewRenderer(host Host, opts ...Option) *Renderer {
	r := &Renderer{
		host:     host,
		compiled: make(map[*Component]RenderFunc),
		roots:    make(map[HostNode]VNode),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.sys == nil {
		r.sys = reactivity.NewSystem(reactivity.WithLogger(r.logger))
	}
	if r.sched == nil {
		r.sched = scheduler.New(
			scheduler.WithLogger(r.logger),
			scheduler.WithMetrics(r.metrics),
			scheduler.WithTracer(r.tracer),
		)
	}
	return r
}

// Host returns the host backend.
func (r *Renderer) Host() Host { return r.host }

// System returns the reactive system.
func (r *Renderer) System() *reactivity.System { return r.sys }

// Scheduler returns the job scheduler.
func (r *Renderer) Scheduler() *scheduler.Scheduler { return r.sched }

// Render patches vnode into container against what was rendered there
// before. A nil vnode unmounts the previous tree.
func (r *Renderer) Render(vnode VNode, container HostNode) {
	prev := r.roots[container]
	if vnode == nil {
		if prev != nil {
			r.unmount(prev, true)
			delete(r.roots, container)
		}
		return
	}
	r.patch(prev, vnode, container, nil, nil)
	r.roots[container] = vnode
}

func (r *Renderer) patch(n1, n2 VNode, container, anchor HostNode, parent *Instance) {
	if n1 == n2 {
		return
	}
	if n1 != nil && !isSameVNodeType(n1, n2) {
		anchor = r.nextHostNode(n1)
		r.unmount(n1, true)
		n1 = nil
	}

	switch n := n2.(type) {
	case *TextNode:
		r.processText(n1, n, container, anchor)
	case *FragmentNode:
		r.processFragment(n1, n, container, anchor, parent)
	case *ElementNode:
		r.processElement(n1, n, container, anchor, parent)
	case *ComponentNode:
		r.processComponent(n1, n, container, anchor, parent)
	default:
		panic(errors.New("V001").WithDetailf("cannot patch %T", n2))
	}
}

func (r *Renderer) processText(n1 VNode, n2 *TextNode, container, anchor HostNode) {
	if n1 == nil {
		n2.el = r.hostCreateText(n2.Content)
		r.hostInsert(n2.el, container, anchor)
		return
	}
	prev := n1.(*TextNode)
	n2.el = prev.el
	if prev.Content != n2.Content {
		r.hostSetText(n2.el, n2.Content)
	}
}

func (r *Renderer) processFragment(n1 VNode, n2 *FragmentNode, container, anchor HostNode, parent *Instance) {
	if n1 == nil {
		n2.el = r.hostCreateText("")
		n2.end = r.hostCreateText("")
		r.hostInsert(n2.el, container, anchor)
		r.hostInsert(n2.end, container, anchor)
		r.mountChildren(n2.Children, container, n2.end, parent)
		return
	}
	prev := n1.(*FragmentNode)
	n2.el, n2.end = prev.el, prev.end
	r.patchKeyedChildren(prev.Children, n2.Children, container, n2.end, parent)
}

func (r *Renderer) processElement(n1 VNode, n2 *ElementNode, container, anchor HostNode, parent *Instance) {
	if n1 == nil {
		r.mountElement(n2, container, anchor, parent)
		return
	}
	r.patchElement(n1.(*ElementNode), n2, parent)
}

func (r *Renderer) mountElement(v *ElementNode, container, anchor HostNode, parent *Instance) {
	el := r.hostCreateElement(v.Tag)
	v.el = el
	for _, k := range sortedKeys(v.Props) {
		if k == "key" {
			continue
		}
		r.hostPatchProp(el, k, nil, v.Props[k])
	}
	switch {
	case v.shape.Has(ShapeTextChildren):
		r.hostSetElementText(el, v.Text)
	case v.shape.Has(ShapeArrayChildren):
		r.mountChildren(v.Children, el, nil, parent)
	}
	r.hostInsert(el, container, anchor)
}

func (r *Renderer) mountChildren(children []VNode, container, anchor HostNode, parent *Instance) {
	for _, c := range children {
		r.patch(nil, c, container, anchor, parent)
	}
}

func (r *Renderer) patchElement(n1, n2 *ElementNode, parent *Instance) {
	el := n1.el
	n2.el = el
	r.patchProps(el, n1.Props, n2.Props)
	r.patchChildren(n1, n2, el, parent)
}

func (r *Renderer) patchProps(el HostNode, prev, next Props) {
	for _, k := range sortedKeys(next) {
		if k == "key" {
			continue
		}
		old, v := prev[k], next[k]
		if _, had := prev[k]; !had || !valueEqual(old, v) {
			r.hostPatchProp(el, k, old, v)
		}
	}
	for _, k := range sortedKeys(prev) {
		if k == "key" {
			continue
		}
		if _, ok := next[k]; !ok {
			r.hostPatchProp(el, k, prev[k], nil)
		}
	}
}

// patchChildren reconciles the children of an element.
func (r *Renderer) patchChildren(n1, n2 *ElementNode, el HostNode, parent *Instance) {
	prevShape, nextShape := n1.shape, n2.shape

	switch {
	case nextShape.Has(ShapeTextChildren):
		if prevShape.Has(ShapeArrayChildren) {
			r.unmountChildren(n1.Children, true)
		}
		if !prevShape.Has(ShapeTextChildren) || n1.Text != n2.Text {
			r.hostSetElementText(el, n2.Text)
		}

	case nextShape.Has(ShapeArrayChildren):
		switch {
		case prevShape.Has(ShapeArrayChildren):
			r.patchKeyedChildren(n1.Children, n2.Children, el, nil, parent)
		case prevShape.Has(ShapeTextChildren):
			r.hostSetElementText(el, "")
			r.mountChildren(n2.Children, el, nil, parent)
		default:
			r.mountChildren(n2.Children, el, nil, parent)
		}

	default:
		switch {
		case prevShape.Has(ShapeTextChildren):
			r.hostSetElementText(el, "")
		case prevShape.Has(ShapeArrayChildren):
			r.unmountChildren(n1.Children, true)
		}
	}
}

func (r *Renderer) unmountChildren(children []VNode, doRemove bool) {
	for _, c := range children {
		r.unmount(c, doRemove)
	}
}

// unmount tears v down. Host nodes are only removed when doRemove is set;
// descendants of a removed element go with it.
func (r *Renderer) unmount(v VNode, doRemove bool) {
	switch n := v.(type) {
	case *ComponentNode:
		r.unmountComponent(n.instance, doRemove)
	case *FragmentNode:
		r.unmountChildren(n.Children, doRemove)
		if doRemove {
			r.hostRemove(n.el)
			r.hostRemove(n.end)
		}
	case *ElementNode:
		r.unmountChildren(n.Children, false)
		if doRemove {
			r.hostRemove(n.el)
		}
	case *TextNode:
		if doRemove {
			r.hostRemove(n.el)
		}
	}
}

// move reinserts v's host nodes before anchor.
func (r *Renderer) move(v VNode, container, anchor HostNode) {
	switch n := v.(type) {
	case *ComponentNode:
		r.move(n.instance.subTree, container, anchor)
	case *FragmentNode:
		r.hostMove(n.el, container, anchor)
		for _, c := range n.Children {
			r.move(c, container, anchor)
		}
		r.hostMove(n.end, container, anchor)
	default:
		r.hostMove(v.El(), container, anchor)
	}
}

// nextHostNode returns the host node after everything v owns.
func (r *Renderer) nextHostNode(v VNode) HostNode {
	switch n := v.(type) {
	case *ComponentNode:
		return r.nextHostNode(n.instance.subTree)
	case *FragmentNode:
		return r.host.NextSibling(n.end)
	}
	return r.host.NextSibling(v.El())
}
