package el_test

import (
	"testing"

	. "github.com/vango-dev/minivue/el"
	"github.com/vango-dev/minivue/pkg/memdom"
	"github.com/vango-dev/minivue/pkg/runtime"
)

func render(v runtime.VNode) (*memdom.Host, *memdom.Node) {
	host := memdom.New()
	root := host.NewContainer("div")
	runtime.NewRenderer(host).Render(v, root)
	return host, root
}

func TestElementSingleStringIsTextChildren(t *testing.T) {
	n, ok := P("hello").(*runtime.ElementNode)
	if !ok {
		t.Fatalf("P returned %T", P("hello"))
	}
	if n.Text != "hello" || len(n.Children) != 0 {
		t.Errorf("got text %q children %d, want text children", n.Text, len(n.Children))
	}
	if !n.Shape().Has(runtime.ShapeTextChildren) {
		t.Errorf("shape %b lacks text children", n.Shape())
	}
}

func TestElementMixedChildren(t *testing.T) {
	n := Div("a", Span("b"), "c").(*runtime.ElementNode)
	if len(n.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(n.Children))
	}
	if _, ok := n.Children[0].(*runtime.TextNode); !ok {
		t.Errorf("child 0 is %T, want *runtime.TextNode", n.Children[0])
	}
}

func TestElementRender(t *testing.T) {
	_, root := render(Div(ID("root"), Class("card", "wide"), Data("id", "7"),
		H1("Title"),
		Ul(Range([]string{"x", "y"}, func(s string, i int) VNode {
			return Li(Key(s), s)
		})),
		If(false, P("hidden")),
		Input(Type("text"), Disabled(true)),
	))

	want := `<div class="card wide" data-id="7" id="root"><h1>Title</h1><ul><li>x</li><li>y</li></ul><input disabled="true" type="text"></div>`
	if got := root.InnerHTML(); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestKeyIsVNodeKey(t *testing.T) {
	if got := Li(Key(3), "x").Key(); got != 3 {
		t.Errorf("got key %v, want 3", got)
	}
}

func TestEvents(t *testing.T) {
	clicks := 0
	host, root := render(Button(OnClick(func() { clicks++ }), "+"))

	btn := root.Query("button")
	if !host.Dispatch(btn, "click") {
		t.Fatal("no click listener bound")
	}
	if clicks != 1 {
		t.Errorf("got %d clicks, want 1", clicks)
	}
}

func TestOnKeys(t *testing.T) {
	tests := []struct {
		attr Attr
		want string
	}{
		{OnClick(nil), "onClick"},
		{OnKeyDown(nil), "onKeydown"},
		{On("submit", nil), "onSubmit"},
	}
	for _, tt := range tests {
		if tt.attr.Key != tt.want {
			t.Errorf("got %q, want %q", tt.attr.Key, tt.want)
		}
	}
}

func TestFragmentAndText(t *testing.T) {
	_, root := render(Fragment(Text("a"), Textf("%d", 1), B("b")))
	if got, want := root.InnerHTML(), "a1<b>b</b>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfElse(t *testing.T) {
	if got := IfElse(true, P("y"), P("n")).(*runtime.ElementNode).Text; got != "y" {
		t.Errorf("got %q, want y", got)
	}
	if got := IfElse(false, P("y"), P("n")).(*runtime.ElementNode).Text; got != "n" {
		t.Errorf("got %q, want n", got)
	}
}

func TestUseComponent(t *testing.T) {
	greet := &runtime.Component{
		Name: "Greet",
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			return Span("hi " + runtime.ToDisplayString(ctx.Get("who")))
		},
	}
	_, root := render(Div(Use(greet, Props{"who": "bob"}, nil)))
	if got, want := root.InnerHTML(), "<div><span>hi bob</span></div>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnsupportedArgumentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for int argument")
		}
	}()
	Div(42)
}
