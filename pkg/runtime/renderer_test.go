package runtime_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/minivue/pkg/memdom"
	"github.com/vango-dev/minivue/pkg/runtime"
)

type env struct {
	r    *runtime.Renderer
	host *memdom.Host
	root *memdom.Node
	logs *bytes.Buffer
}

func newEnv(opts ...runtime.Option) *env {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	host := memdom.New()
	opts = append([]runtime.Option{runtime.WithLogger(logger)}, opts...)
	return &env{
		r:    runtime.NewRenderer(host, opts...),
		host: host,
		root: host.NewContainer("div"),
		logs: logs,
	}
}

func (e *env) render(v runtime.VNode) {
	e.r.Render(v, e.root)
}

func (e *env) flush() {
	e.r.Scheduler().Drain()
}

func list(keys ...any) runtime.VNode {
	children := make([]runtime.VNode, len(keys))
	for i, k := range keys {
		children[i] = runtime.H("li", runtime.Props{"key": k}, fmt.Sprint(k))
	}
	return runtime.H("ul", nil, children)
}

func TestRenderElementTree(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("div", runtime.Props{"id": "root"}, []runtime.VNode{
		runtime.H("p", nil, "a"),
	}))

	if got, want := e.root.InnerHTML(), `<div id="root"><p>a</p></div>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRenderNilUnmounts(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("p", nil, "a"))
	e.render(nil)

	if got := e.root.InnerHTML(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestKeyedReorderIsOneMove(t *testing.T) {
	e := newEnv()
	e.render(list(1, 2, 3))
	e.host.ResetOps()

	e.render(list(3, 1, 2))

	if got, want := e.root.InnerHTML(), "<ul><li>3</li><li>1</li><li>2</li></ul>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if n := e.host.Count(memdom.OpMove); n != 1 {
		t.Errorf("got %d moves, want 1", n)
	}
	if n := e.host.Count(memdom.OpRemove); n != 0 {
		t.Errorf("got %d removes, want 0", n)
	}
	if n := e.host.Count(memdom.OpCreateElement); n != 0 {
		t.Errorf("got %d creates, want 0", n)
	}
}

func TestKeyedRoundTripKeepsHostNodes(t *testing.T) {
	e := newEnv()
	e.render(list("a", "b", "c", "d"))
	ul := e.root.FirstChild()
	before := map[string]*memdom.Node{}
	for _, li := range ul.Children {
		before[li.TextContent()] = li
	}

	e.render(list("d", "b", "e", "a"))

	var order []string
	for _, li := range ul.Children {
		order = append(order, li.TextContent())
	}
	if got, want := strings.Join(order, ","), "d,b,e,a"; got != want {
		t.Errorf("got order %s, want %s", got, want)
	}
	for _, k := range []string{"a", "b", "d"} {
		found := false
		for _, li := range ul.Children {
			if li == before[k] {
				found = true
			}
		}
		if !found {
			t.Errorf("host node for %q was recreated", k)
		}
	}
	if n := e.host.Count(memdom.OpRemove); n != 1 {
		t.Errorf("got %d removes, want 1 (c)", n)
	}
}

func TestKeyedDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to []any
	}{
		{"append", []any{1, 2}, []any{1, 2, 3}},
		{"prepend", []any{2, 3}, []any{1, 2, 3}},
		{"insert middle", []any{1, 3}, []any{1, 2, 3}},
		{"remove head", []any{1, 2, 3}, []any{2, 3}},
		{"remove tail", []any{1, 2, 3}, []any{1, 2}},
		{"remove middle", []any{1, 2, 3}, []any{1, 3}},
		{"reverse", []any{1, 2, 3, 4, 5}, []any{5, 4, 3, 2, 1}},
		{"swap ends", []any{1, 2, 3, 4}, []any{4, 2, 3, 1}},
		{"mixed", []any{1, 2, 3, 4, 5, 6}, []any{7, 5, 2, 3, 8, 1}},
		{"replace all", []any{1, 2}, []any{3, 4}},
		{"to empty", []any{1, 2}, nil},
		{"from empty", nil, []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.render(list(tt.from...))
			e.render(list(tt.to...))

			want := newEnv()
			want.render(list(tt.to...))
			if got := e.root.InnerHTML(); got != want.root.InnerHTML() {
				t.Errorf("got %s, want %s", got, want.root.InnerHTML())
			}
		})
	}
}

func TestKeyedInsertWithoutMovesOnlyCreates(t *testing.T) {
	e := newEnv()
	e.render(list(1, 2, 5, 6))
	e.host.ResetOps()

	e.render(list(1, 3, 2, 4, 5, 6))

	if n := e.host.Count(memdom.OpMove); n != 0 {
		t.Errorf("got %d moves, want 0", n)
	}
	if n := e.host.Count(memdom.OpCreateElement); n != 2 {
		t.Errorf("got %d creates, want 2", n)
	}
}

func TestUnkeyedChildren(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("div", nil, []runtime.VNode{
		runtime.H("span", nil, "a"),
		runtime.H("span", nil, "b"),
	}))
	span := e.root.Query("span")
	e.render(runtime.H("div", nil, []runtime.VNode{
		runtime.H("span", nil, "x"),
		runtime.H("em", nil, "y"),
		runtime.H("span", nil, "z"),
	}))

	if got, want := e.root.InnerHTML(), "<div><span>x</span><em>y</em><span>z</span></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if e.root.Query("span") != span {
		t.Error("first span should be patched in place")
	}
}

func TestChildrenTransitions(t *testing.T) {
	e := newEnv()
	steps := []struct {
		children any
		want     string
	}{
		{"text", "<p>text</p>"},
		{[]runtime.VNode{runtime.H("b", nil, "1")}, "<p><b>1</b></p>"},
		{"again", "<p>again</p>"},
		{nil, "<p></p>"},
		{[]runtime.VNode{runtime.H("i", nil, nil)}, "<p><i></i></p>"},
		{nil, "<p></p>"},
	}
	for i, s := range steps {
		e.render(runtime.H("p", nil, s.children))
		if got := e.root.InnerHTML(); got != s.want {
			t.Errorf("step %d: got %s, want %s", i, got, s.want)
		}
	}
}

func TestSameTextIsNotRewritten(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("p", nil, "same"))
	e.host.ResetOps()
	e.render(runtime.H("p", nil, "same"))

	if n := len(e.host.Ops()); n != 0 {
		t.Errorf("got %d ops, want 0", n)
	}
}

func TestPropsPatch(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("a", runtime.Props{"href": "/x", "title": "t"}, nil))
	e.render(runtime.H("a", runtime.Props{"href": "/y", "rel": "next"}, nil))

	if got, want := e.root.InnerHTML(), `<a href="/y" rel="next"></a>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDifferentTypeReplaces(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("div", nil, []runtime.VNode{
		runtime.H("p", nil, "a"),
		runtime.H("b", nil, "end"),
	}))
	e.render(runtime.H("div", nil, []runtime.VNode{
		runtime.H("span", nil, "a"),
		runtime.H("b", nil, "end"),
	}))

	if got, want := e.root.InnerHTML(), "<div><span>a</span><b>end</b></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFragment(t *testing.T) {
	e := newEnv()
	frag := func(keys ...any) runtime.VNode {
		var children []runtime.VNode
		for _, k := range keys {
			children = append(children, runtime.H("i", runtime.Props{"key": k}, fmt.Sprint(k)))
		}
		return runtime.H("div", nil, []runtime.VNode{
			runtime.H(runtime.Fragment, nil, children),
			runtime.H("hr", nil, nil),
		})
	}
	e.render(frag(1, 2))
	e.render(frag(2, 3, 1))

	if got, want := e.root.InnerHTML(), "<div><i>2</i><i>3</i><i>1</i><hr></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestTextVNode(t *testing.T) {
	e := newEnv()
	e.render(runtime.H("p", nil, []runtime.VNode{
		runtime.CreateTextVNode("a"),
		runtime.H(runtime.Text, nil, "b"),
	}))
	e.render(runtime.H("p", nil, []runtime.VNode{
		runtime.CreateTextVNode("a"),
		runtime.H(runtime.Text, nil, "c"),
	}))

	if got, want := e.root.InnerHTML(), "<p>ac</p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if n := e.host.Count(memdom.OpSetText); n != 1 {
		t.Errorf("got %d text updates, want 1", n)
	}
}

func TestListenerProps(t *testing.T) {
	e := newEnv()
	clicked := 0
	e.render(runtime.H("button", runtime.Props{"onClick": func() { clicked++ }}, "go"))

	btn := e.root.Query("button")
	e.host.Dispatch(btn, "click")
	if clicked != 1 {
		t.Errorf("got %d clicks, want 1", clicked)
	}
}
