package el

import (
	"fmt"

	"github.com/vango-dev/minivue/pkg/runtime"
)

// Text creates a raw text vnode.
func Text(content string) VNode {
	return runtime.CreateTextVNode(content)
}

// Textf creates a formatted text vnode.
func Textf(format string, args ...any) VNode {
	return runtime.CreateTextVNode(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...VNode) VNode {
	return runtime.H(runtime.Fragment, nil, children)
}

// Use renders a component. children may be nil, runtime.Slots, or a
// runtime.Slot used as the default slot.
func Use(c *runtime.Component, props Props, children any) VNode {
	return runtime.H(c, props, children)
}

// If returns node when cond holds, else nil.
func If(cond bool, node VNode) VNode {
	if cond {
		return node
	}
	return nil
}

// IfElse picks between two nodes.
func IfElse(cond bool, yes, no VNode) VNode {
	if cond {
		return yes
	}
	return no
}

// Range maps items to vnodes. Give each a Key for keyed diffing.
func Range[T any](items []T, fn func(item T, index int) VNode) []VNode {
	out := make([]VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}
