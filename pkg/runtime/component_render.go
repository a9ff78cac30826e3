package runtime

import (
	"context"
	"time"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/scheduler"
	"github.com/vango-dev/minivue/pkg/telemetry"
)

func (r *Renderer) processComponent(n1 VNode, n2 *ComponentNode, container, anchor HostNode, parent *Instance) {
	if n1 == nil {
		r.mountComponent(n2, container, anchor, parent)
		return
	}
	r.updateComponent(n1.(*ComponentNode), n2)
}

func (r *Renderer) mountComponent(vnode *ComponentNode, container, anchor HostNode, parent *Instance) {
	inst := r.createComponentInstance(vnode, parent)
	vnode.instance = inst
	inst.setupComponent()
	r.setupRenderEffect(inst, container, anchor)
}

func (r *Renderer) updateComponent(n1, n2 *ComponentNode) {
	inst := n1.instance
	n2.instance = inst
	if shouldUpdateComponent(n1, n2) {
		inst.next = n2
		// The parent renders the child now; a queued self-update would be
		// a duplicate.
		r.sched.Invalidate(inst.job)
		inst.update.Run()
		return
	}
	n2.el = n1.el
	inst.vnode = n2
}

func shouldUpdateComponent(prev, next *ComponentNode) bool {
	if prev.shape.Has(ShapeSlotChildren) || next.shape.Has(ShapeSlotChildren) {
		return true
	}
	return hasPropsChanged(withoutKey(prev.Props), withoutKey(next.Props))
}

func withoutKey(p Props) Props {
	if _, ok := p["key"]; !ok {
		return p
	}
	out := make(Props, len(p)-1)
	for k, v := range p {
		if k != "key" {
			out[k] = v
		}
	}
	return out
}

func (r *Renderer) setupRenderEffect(inst *Instance, container, anchor HostNode) {
	inst.job = scheduler.NewNamedJob(inst.Name(), inst.uid, inst.Update)
	inst.update = r.sys.NewEffect(func() any {
		r.componentUpdate(inst, container, anchor)
		return nil
	}, func() {
		r.sched.QueueJob(inst.job)
	})
	inst.update.Run()
	r.metrics.Mounted(1)
}

func (r *Renderer) componentUpdate(inst *Instance, container, anchor HostNode) {
	phase := "update"
	if !inst.isMounted {
		phase = "mount"
	}
	_, span := r.tracer.Start(context.Background(), "minivue.component."+phase,
		telemetry.AttrComponent.String(inst.Name()))
	defer telemetry.EndRecover(span)
	start := time.Now()

	if !inst.isMounted {
		tree := r.renderComponentRoot(inst)
		inst.subTree = tree
		r.patch(nil, tree, container, anchor, inst)
		inst.vnode.el = tree.El()
		inst.isMounted = true
		r.metrics.Render(inst.Name(), phase, time.Since(start))
		return
	}

	if next := inst.next; next != nil {
		next.el = inst.vnode.el
		inst.updateComponentPreRender(next)
	}
	prev := inst.subTree
	tree := r.renderComponentRoot(inst)
	inst.subTree = tree
	r.patch(prev, tree, r.host.ParentNode(firstHostNode(prev)), r.nextHostNode(prev), inst)
	inst.vnode.el = tree.El()
	r.metrics.Render(inst.Name(), phase, time.Since(start))
}

func (r *Renderer) renderComponentRoot(inst *Instance) VNode {
	tree := inst.render(inst.proxy)
	if tree == nil {
		tree = CreateTextVNode("")
	}
	return tree
}

// firstHostNode returns the first host node v owns.
func firstHostNode(v VNode) HostNode {
	if c, ok := v.(*ComponentNode); ok && c.instance != nil {
		return firstHostNode(c.instance.subTree)
	}
	return v.El()
}

func (r *Renderer) unmountComponent(inst *Instance, doRemove bool) {
	if inst == nil || inst.isUnmounted {
		return
	}
	if inst.update != nil {
		inst.update.Stop()
	}
	if inst.job != nil {
		r.sched.Invalidate(inst.job)
	}
	if inst.subTree != nil {
		r.unmount(inst.subTree, doRemove)
	}
	inst.isUnmounted = true
	r.metrics.Mounted(-1)
}

func (r *Renderer) compileComponent(def *Component) RenderFunc {
	if fn, ok := r.compiled[def]; ok {
		return fn
	}
	if def.Template == "" {
		panic(errors.New("V004").WithDetailf("component %s", def.displayName()))
	}
	if r.compile == nil {
		panic(errors.New("V003").WithDetailf("component %s declares a template", def.displayName()))
	}
	fn, err := r.compile(def.Template)
	if err != nil {
		panic(errors.New("V005").WithDetailf("component %s", def.displayName()).Wrap(err))
	}
	r.compiled[def] = fn
	return fn
}
