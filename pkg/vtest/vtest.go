package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/minivue"
	"github.com/vango-dev/minivue/pkg/memdom"
	"github.com/vango-dev/minivue/pkg/runtime"
)

// Builder allows fluent construction of a mounted component.
type Builder struct {
	root     *runtime.Component
	props    runtime.Props
	provides [][2]any
	opts     []minivue.Option
}

// New creates a builder for root.
func New(root *runtime.Component) *Builder {
	return &Builder{root: root}
}

// WithProps sets the root props.
func (b *Builder) WithProps(props runtime.Props) *Builder {
	b.props = props
	return b
}

// WithProvide makes value injectable under key.
//
// Example:
//
//	h := vtest.New(Root).WithProvide("api", fake).Mount(t)
func (b *Builder) WithProvide(key, value any) *Builder {
	b.provides = append(b.provides, [2]any{key, value})
	return b
}

// WithOptions passes app options through to minivue.CreateApp.
func (b *Builder) WithOptions(opts ...minivue.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Mount mounts the component and fails t on error. The app is unmounted
// when the test ends.
func (b *Builder) Mount(t testing.TB) *Harness {
	t.Helper()
	app := minivue.CreateApp(b.root, b.props, b.opts...)
	for _, kv := range b.provides {
		app.Provide(kv[0], kv[1])
	}
	if err := app.Mount(nil); err != nil {
		t.Fatalf("mount %s: %v", b.root.Name, err)
	}
	t.Cleanup(app.Unmount)
	return &Harness{t: t, app: app}
}

// Harness drives a mounted app from a test.
type Harness struct {
	t   testing.TB
	app *minivue.App
}

// App returns the mounted app.
func (h *Harness) App() *minivue.App { return h.app }

// Host returns the in-memory DOM.
func (h *Harness) Host() *memdom.Host { return h.app.Host() }

// Root returns the container the app is mounted into.
func (h *Harness) Root() *memdom.Node { return h.app.Container() }

// HTML returns the container's inner HTML.
func (h *Harness) HTML() string { return h.app.HTML() }

// Flush runs pending re-renders.
func (h *Harness) Flush() { h.app.Flush() }

// Find returns the first node matching sel and fails the test if none does.
func (h *Harness) Find(sel string) *memdom.Node {
	h.t.Helper()
	n := h.Root().Query(sel)
	if n == nil {
		h.t.Fatalf("no element matches %q in:\n%s", sel, truncate(h.HTML(), 500))
	}
	return n
}

// FindAll returns every node matching sel.
func (h *Harness) FindAll(sel string) []*memdom.Node {
	return h.Root().QueryAll(sel)
}

// Fire dispatches event on the element matching sel, then flushes.
func (h *Harness) Fire(sel, event string, args ...any) {
	h.t.Helper()
	n := h.Find(sel)
	if !h.Host().Dispatch(n, event, args...) {
		h.t.Fatalf("%s has no %s listener", sel, event)
	}
	h.Flush()
}

// Click fires a click on the element matching sel.
func (h *Harness) Click(sel string) {
	h.t.Helper()
	h.Fire(sel, "click")
}

// State reads a root setup binding, with refs unwrapped.
func (h *Harness) State(key string) any {
	h.t.Helper()
	state := h.app.State()
	if state == nil {
		h.t.Fatalf("root component has no setup state")
	}
	return state.Get(key)
}

// SetState writes a root setup binding, then flushes.
func (h *Harness) SetState(key string, value any) {
	h.t.Helper()
	state := h.app.State()
	if state == nil {
		h.t.Fatalf("root component has no setup state")
	}
	state.Set(key, value)
	h.Flush()
}

// Ops returns the host operations recorded since the last ResetOps.
func (h *Harness) Ops() []memdom.Op { return h.Host().Ops() }

// ResetOps clears the recorded host operations.
func (h *Harness) ResetOps() { h.Host().ResetOps() }

// ExpectHTML asserts the container's inner HTML.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("got HTML\n%s\nwant\n%s", got, want)
	}
}

// ExpectText asserts the text content of the element matching sel.
func (h *Harness) ExpectText(sel, want string) {
	h.t.Helper()
	if got := h.Find(sel).TextContent(); got != want {
		h.t.Errorf("%s: got text %q, want %q", sel, got, want)
	}
}

// ExpectOps asserts how many operations of kind were recorded.
func (h *Harness) ExpectOps(kind memdom.OpKind, want int) {
	h.t.Helper()
	if got := h.Host().Count(kind); got != want {
		h.t.Errorf("got %d %s ops, want %d", got, kind, want)
	}
}

// RenderToString renders a vnode tree into a fresh in-memory DOM and
// returns its HTML.
//
// Example:
//
//	html := vtest.RenderToString(el.P("hi"))
func RenderToString(node runtime.VNode) string {
	host := memdom.New()
	root := host.NewContainer("div")
	r := runtime.NewRenderer(host)
	r.Scheduler().Turn(func() {
		r.Render(node, root)
	})
	return root.InnerHTML()
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node runtime.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node runtime.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains an element matching sel.
func ExpectElement(t testing.TB, node runtime.VNode, sel string) {
	t.Helper()
	host := memdom.New()
	root := host.NewContainer("div")
	runtime.NewRenderer(host).Render(node, root)
	if root.Query(sel) == nil {
		t.Errorf("expected rendered output to contain %s, got:\n%s", sel, truncate(root.InnerHTML(), 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node runtime.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
