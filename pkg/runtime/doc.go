// Package runtime is the minivue renderer: virtual nodes, component
// instances, and the reconciler that patches a host tree.
//
// # Virtual Nodes
//
// A VNode is one of four variants sharing the VNode interface:
//
//   - *ElementNode: a host element with props and text or child vnodes
//   - *ComponentNode: a component definition plus the props and slots
//     passed to it
//   - *TextNode: a raw text host node
//   - *FragmentNode: children rendered straight into the parent
//
// H builds any of them and computes the node's ShapeFlags:
//
//	H("div", Props{"id": "root"}, []VNode{
//	    H("p", nil, "a"),
//	})
//
// # Components
//
// A Component has an optional Setup that returns bindings or a render
// function, and a Render function or Template string:
//
//	Counter := &runtime.Component{
//	    Name: "Counter",
//	    Setup: func(props *reactivity.Object, ctx *runtime.SetupContext) any {
//	        count := ctx.Ref(0)
//	        return map[string]any{
//	            "count": count,
//	            "inc":   func() { count.SetValue(count.Peek().(int) + 1) },
//	        }
//	    },
//	    Render: func(ctx runtime.RenderContext) runtime.VNode {
//	        return runtime.H("button", runtime.Props{"onClick": ctx.Get("inc")},
//	            fmt.Sprint(ctx.Get("count")))
//	    },
//	}
//
// Each mounted component owns a render effect. Reactive writes queue the
// effect's job on the scheduler, so several writes in one turn cause one
// re-render.
//
// # Hosts
//
// The renderer only talks to a Host. Package memdom provides an in-memory
// implementation.
//
// # Errors
//
// Panics raised while rendering or patching are not recovered. They unwind
// through Render, App.Mount, and the scheduler flush to the caller.
package runtime
