// Package vtest provides testing helpers for minivue components.
//
// The vtest package reduces boilerplate when testing components by mounting
// them on an in-memory DOM and exposing event, flush, and HTML assertions.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(Counter).Mount(t)
//	    h.Click("button")
//	    h.ExpectHTML("<button>1</button>")
//	}
//
// # Fluent Builder
//
// The builder chains props, provided values, and app options:
//
//	h := vtest.New(Dashboard).
//	    WithProps(runtime.Props{"title": "Admin"}).
//	    WithProvide("theme", "dark").
//	    Mount(t)
//
// Events fired through the harness flush the scheduler afterwards, so the
// DOM reflects every re-render the handler caused.
//
// # Render Assertions
//
// Assert on a vnode tree without a component:
//
//	vtest.ExpectContains(t, el.P("Welcome"), "Welcome")
//	vtest.ExpectElement(t, el.Div(el.Button("x")), "button")
package vtest
