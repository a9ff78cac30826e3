// Package memdom is an in-memory DOM that implements runtime.Host.
//
// Every mutation the renderer performs is recorded as an Op, which makes
// the backend useful for tests, benchmarks, and the devtools op stream:
//
//	host := memdom.New()
//	root := host.NewContainer("div")
//	r := runtime.NewRenderer(host)
//	r.Render(runtime.H("p", nil, "a"), root)
//	root.OuterHTML() // <div><p>a</p></div>
//
// Listeners are bound through props named onXxx and fired with Dispatch.
//
// A Host is not safe for concurrent use.
package memdom
