// Package el is a small DSL for building minivue vnode trees.
//
// Element constructors take any mix of attributes, event handlers, child
// vnodes, and strings:
//
//	el.Div(el.ID("root"), el.Class("card"),
//		el.P("hello"),
//		el.Button(el.OnClick(inc), "+1"),
//	)
//
// A lone string argument becomes the element's text content; otherwise
// strings become text vnodes among the children.
package el
