// Package errors provides structured, coded errors for minivue.
//
// Every error a caller can act on carries a stable code that maps to a
// registered template:
//
//   - R0xx: reactivity diagnostics (readonly writes, bad wrap targets)
//   - V0xx: virtual node construction and rendering
//   - C0xx: template compilation
//   - S0xx: scheduling and the event loop
//   - G0xx: configuration
//   - X0xx: command line
//
// Diagnostics in the reactive core are logged rather than returned, so the
// render loop keeps going after a programmer mistake. Compiler errors are
// returned and carry the template position:
//
//	_, err := compiler.Compile("<div><span></div>")
//	var e *errors.Error
//	if errors.As(err, &e) {
//	    fmt.Println(e.Format())
//	}
//	// ERROR C001: Missing end tag
//	//
//	//   template:1:6
//	//
//	//   → 1 │ <div><span></div>
//	//       │      ^
package errors
