package runtime

import (
	"github.com/vango-dev/minivue/pkg/reactivity"
)

// RenderContext is what a render function reads bindings from.
type RenderContext interface {
	Get(key string) any
}

// RenderFunc produces a component's vnode tree.
type RenderFunc func(ctx RenderContext) VNode

// CompileFunc turns a template into a render function.
type CompileFunc func(template string) (RenderFunc, error)

// SetupFunc runs once per instance before the first render. It returns a
// map of bindings (refs are unwrapped on read), a RenderFunc, or nil.
type SetupFunc func(props *reactivity.Object, ctx *SetupContext) any

// Component is a component definition.
type Component struct {
	// Name labels the component in logs and metrics.
	Name string

	// Props holds default values for props the parent does not pass.
	Props Props

	Setup    SetupFunc
	Render   RenderFunc
	Template string
}

func (c *Component) displayName() string {
	if c.Name != "" {
		return c.Name
	}
	return "Anonymous"
}
