// Package minivue is the public entry point for building reactive
// component trees on top of the in-memory DOM.
//
// Usage:
//
//	counter := &minivue.Component{
//	    Name: "Counter",
//	    Setup: func(props *reactivity.Object, ctx *minivue.SetupContext) any {
//	        return map[string]any{"count": ctx.Ref(0)}
//	    },
//	    Template: "<p>{{count}}</p>",
//	}
//
//	app := minivue.CreateApp(counter, nil)
//	if err := app.Mount(nil); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(app.HTML()) // <p>0</p>
package minivue

import (
	"github.com/vango-dev/minivue/pkg/compiler"
	"github.com/vango-dev/minivue/pkg/runtime"
)

// Version is the minivue release.
const Version = "0.4.0"

// =============================================================================
// Component model (re-export from pkg/runtime)
// =============================================================================

type (
	Component     = runtime.Component
	Props         = runtime.Props
	VNode         = runtime.VNode
	RenderContext = runtime.RenderContext
	RenderFunc    = runtime.RenderFunc
	SetupContext  = runtime.SetupContext
	Instance      = runtime.Instance
	Slot          = runtime.Slot
	Slots         = runtime.Slots
)

const (
	// Fragment renders children without a wrapper element.
	Fragment = runtime.Fragment
	// Text renders a raw text node.
	Text = runtime.Text
)

// H creates a vnode. See runtime.H.
func H(typ any, props Props, children any) VNode {
	return runtime.H(typ, props, children)
}

// RenderSlot renders the named slot from a render context.
func RenderSlot(ctx RenderContext, name string, scope Props) VNode {
	return runtime.RenderSlotsFrom(ctx, name, scope)
}

// ToDisplayString formats an interpolated value.
func ToDisplayString(v any) string {
	return runtime.ToDisplayString(v)
}

// =============================================================================
// Templates (re-export from pkg/compiler)
// =============================================================================

// Compile turns a template into a render function without caching.
func Compile(template string) (RenderFunc, error) {
	return compiler.Compile(template)
}

// Generate returns the code text produced for a template.
func Generate(template string) (string, error) {
	res, err := compiler.BaseCompile(template)
	if err != nil {
		return "", err
	}
	return res.Code, nil
}
