package runtime_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
)

func TestComponentRerendersOnce(t *testing.T) {
	e := newEnv()
	renders := 0
	var count *reactivity.Ref
	counter := &runtime.Component{
		Name: "Counter",
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			count = ctx.Ref(0)
			return map[string]any{"count": count}
		},
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			renders++
			return runtime.H("span", nil, runtime.ToDisplayString(ctx.Get("count")))
		},
	}
	e.render(runtime.H(counter, nil, nil))

	count.SetValue(1)
	count.SetValue(2)
	count.SetValue(3)
	if renders != 1 {
		t.Fatalf("re-rendered before flush: %d renders", renders)
	}
	e.flush()

	if renders != 2 {
		t.Errorf("got %d renders, want 2", renders)
	}
	if got, want := e.root.InnerHTML(), "<span>3</span>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDisplayedObjectRerenders(t *testing.T) {
	e := newEnv()
	var user *reactivity.Object
	card := &runtime.Component{
		Name: "Card",
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			user = ctx.Reactive(map[string]any{
				"name":    "a",
				"address": map[string]any{"city": "x"},
			})
			return map[string]any{"user": user}
		},
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.H("pre", nil, runtime.ToDisplayString(ctx.Get("user")))
		},
	}
	e.render(runtime.H(card, nil, nil))

	steps := []struct {
		name   string
		mutate func()
		want   string
	}{
		{"field", func() { user.Set("name", "b") }, `{"address":{"city":"x"},"name":"b"}`},
		{"nested field", func() { user.Get("address").(*reactivity.Object).Set("city", "y") }, `{"address":{"city":"y"},"name":"b"}`},
		{"replaced nested", func() { user.Set("address", map[string]any{"city": "z"}) }, `{"address":{"city":"z"},"name":"b"}`},
		{"added key", func() { user.Set("age", 3) }, `{"address":{"city":"z"},"age":3,"name":"b"}`},
		{"deleted key", func() { user.Delete("address") }, `{"age":3,"name":"b"}`},
	}
	for _, step := range steps {
		step.mutate()
		e.flush()
		if got := e.root.TextContent(); got != step.want {
			t.Errorf("%s: got %s, want %s", step.name, got, step.want)
		}
	}
}

func TestEmit(t *testing.T) {
	e := newEnv()
	child := &runtime.Component{
		Name: "Child",
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			ctx.Emit("add", 1, 2)
			ctx.Emit("add-foo", "x")
			ctx.Emit("missing")
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return runtime.H("div", nil, nil) },
	}

	var adds [][]any
	var foo string
	e.render(runtime.H(child, runtime.Props{
		"onAdd":    func(args ...any) { adds = append(adds, args) },
		"onAddFoo": func(s string) { foo = s },
	}, nil))

	if diff := cmp.Diff([][]any{{1, 2}}, adds); diff != "" {
		t.Errorf("onAdd calls mismatch (-want +got):\n%s", diff)
	}
	if foo != "x" {
		t.Errorf("got %q, want %q", foo, "x")
	}
}

func TestEmitAfterSetup(t *testing.T) {
	e := newEnv()
	child := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			return runtime.RenderFunc(func(runtime.RenderContext) runtime.VNode {
				return runtime.H("button", runtime.Props{"onClick": func() { ctx.Emit("pick", 7) }}, "pick")
			})
		},
	}
	var picked any
	e.render(runtime.H(child, runtime.Props{"onPick": func(v any) { picked = v }}, nil))
	e.host.Dispatch(e.root.Query("button"), "click")

	if picked != 7 {
		t.Errorf("got %v, want 7", picked)
	}
}

func TestProvideInject(t *testing.T) {
	e := newEnv()
	var theme, fallback, lazy any
	leaf := &runtime.Component{
		Name: "Leaf",
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			theme = ctx.Inject("theme")
			fallback = ctx.Inject("size", "m")
			lazy = ctx.Inject("id", func() any { return "made" })
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return runtime.H("i", nil, nil) },
	}
	middle := &runtime.Component{
		Name:   "Middle",
		Render: func(runtime.RenderContext) runtime.VNode { return runtime.H(leaf, nil, nil) },
	}
	top := &runtime.Component{
		Name: "Top",
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			ctx.Provide("theme", "dark")
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return runtime.H(middle, nil, nil) },
	}
	e.render(runtime.H(top, nil, nil))

	if theme != "dark" {
		t.Errorf("got theme %v, want dark", theme)
	}
	if fallback != "m" {
		t.Errorf("got fallback %v, want m", fallback)
	}
	if lazy != "made" {
		t.Errorf("got lazy default %v, want made", lazy)
	}
}

func TestInjectNearestProviderWins(t *testing.T) {
	e := newEnv()
	var got any
	leaf := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			got = ctx.Inject("theme")
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return nil },
	}
	middle := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			ctx.Provide("theme", "light")
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return runtime.H(leaf, nil, nil) },
	}
	top := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			ctx.Provide("theme", "dark")
			// A component does not see its own provides.
			if v := ctx.Inject("theme", "none"); v != "none" {
				t.Errorf("self inject got %v, want none", v)
			}
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return runtime.H(middle, nil, nil) },
	}
	e.render(runtime.H(top, nil, nil))

	if got != "light" {
		t.Errorf("got %v, want light", got)
	}
}

func TestSetupContextClosesAfterSetup(t *testing.T) {
	e := newEnv()
	var saved *runtime.SetupContext
	comp := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			saved = ctx
			if ctx.Instance() == nil {
				t.Error("Instance should be available during setup")
			}
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode { return nil },
	}
	e.render(runtime.H(comp, nil, nil))

	saved.Provide("late", 1)
	if saved.Instance() != nil {
		t.Error("Instance should be nil after setup")
	}
	if v := saved.Inject("late"); v != nil {
		t.Errorf("got %v, want nil", v)
	}
	if !strings.Contains(e.logs.String(), "code=R004") {
		t.Errorf("expected R004 diagnostic, got logs:\n%s", e.logs.String())
	}
}

func TestPropsAreReadonlyInSetup(t *testing.T) {
	e := newEnv()
	comp := &runtime.Component{
		Props: runtime.Props{"size": "m"},
		Setup: func(props *reactivity.Object, _ *runtime.SetupContext) any {
			props.Set("label", "changed")
			return nil
		},
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.H("b", nil, fmt.Sprintf("%v/%v", ctx.Get("label"), ctx.Get("size")))
		},
	}
	e.render(runtime.H(comp, runtime.Props{"label": "ok"}, nil))

	if got, want := e.root.InnerHTML(), "<b>ok/m</b>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if !strings.Contains(e.logs.String(), "code=R001") {
		t.Errorf("expected R001 diagnostic, got logs:\n%s", e.logs.String())
	}
}

func TestParentDrivenUpdateRunsChildOnce(t *testing.T) {
	e := newEnv()
	shared := e.r.System().Ref(0)
	childRenders := 0
	child := &runtime.Component{
		Name: "Child",
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			childRenders++
			shared.Value()
			return runtime.H("i", nil, runtime.ToDisplayString(ctx.Get("n")))
		},
	}
	parent := &runtime.Component{
		Name: "Parent",
		Render: func(runtime.RenderContext) runtime.VNode {
			return runtime.H("div", nil, runtime.H(child, runtime.Props{"n": shared.Value()}, nil))
		},
	}
	e.render(runtime.H(parent, nil, nil))

	shared.SetValue(1)
	e.flush()

	if childRenders != 2 {
		t.Errorf("got %d child renders, want 2", childRenders)
	}
	if got, want := e.root.InnerHTML(), "<div><i>1</i></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestChildQueuedBeforeParentRendersOnce(t *testing.T) {
	e := newEnv()
	sys := e.r.System()
	childState := sys.Ref(0)
	parentState := sys.Ref(0)
	childRenders := 0
	child := &runtime.Component{
		Name: "Child",
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			childRenders++
			return runtime.H("i", nil, fmt.Sprintf("%v/%v", childState.Value(), ctx.Get("n")))
		},
	}
	parent := &runtime.Component{
		Name: "Parent",
		Render: func(runtime.RenderContext) runtime.VNode {
			return runtime.H("div", nil, runtime.H(child, runtime.Props{"n": parentState.Value()}, nil))
		},
	}
	e.render(runtime.H(parent, nil, nil))

	childState.SetValue(1)
	parentState.SetValue(1)
	e.flush()

	if childRenders != 2 {
		t.Errorf("got %d child renders, want 2", childRenders)
	}
	if got, want := e.root.InnerHTML(), "<div><i>1/1</i></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestUnchangedPropsSkipChild(t *testing.T) {
	e := newEnv()
	tick := e.r.System().Ref(0)
	childRenders := 0
	child := &runtime.Component{
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			childRenders++
			return runtime.H("i", nil, runtime.ToDisplayString(ctx.Get("label")))
		},
	}
	parent := &runtime.Component{
		Render: func(runtime.RenderContext) runtime.VNode {
			return runtime.H("div", runtime.Props{"data-tick": tick.Value()}, runtime.H(child, runtime.Props{"label": "x"}, nil))
		},
	}
	e.render(runtime.H(parent, nil, nil))
	tick.SetValue(1)
	e.flush()

	if childRenders != 1 {
		t.Errorf("got %d child renders, want 1", childRenders)
	}
	if got, want := e.root.InnerHTML(), `<div data-tick="1"><i>x</i></div>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestUnmountStopsRenderEffect(t *testing.T) {
	e := newEnv()
	sys := e.r.System()
	show, shared := sys.Ref(true), sys.Ref(0)
	childRenders := 0
	var inst *runtime.Instance
	child := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			inst = ctx.Instance()
			return nil
		},
		Render: func(runtime.RenderContext) runtime.VNode {
			childRenders++
			return runtime.H("i", nil, runtime.ToDisplayString(shared.Value()))
		},
	}
	parent := &runtime.Component{
		Render: func(runtime.RenderContext) runtime.VNode {
			if show.Value().(bool) {
				return runtime.H(child, nil, nil)
			}
			return runtime.H("p", nil, "gone")
		},
	}
	e.render(runtime.H(parent, nil, nil))

	show.SetValue(false)
	e.flush()
	shared.SetValue(5)
	e.flush()

	if childRenders != 1 {
		t.Errorf("got %d child renders, want 1", childRenders)
	}
	if !inst.IsUnmounted() {
		t.Error("child should be unmounted")
	}
	if inst.VNode() == nil || inst.SubTree() == nil {
		t.Error("instance should keep its last tree")
	}
	if got, want := e.root.InnerHTML(), "<p>gone</p>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSlots(t *testing.T) {
	e := newEnv()
	card := &runtime.Component{
		Name: "Card",
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.H("section", nil, []runtime.VNode{
				runtime.RenderSlotsFrom(ctx, "header", nil),
				runtime.RenderSlotsFrom(ctx, "default", runtime.Props{"n": 1}),
				runtime.RenderSlotsFrom(ctx, "footer", nil),
			})
		},
	}
	title := e.r.System().Ref("T")
	parent := &runtime.Component{
		Render: func(runtime.RenderContext) runtime.VNode {
			text := title.Value().(string)
			return runtime.H(card, nil, runtime.Slots{
				"header":  func(runtime.Props) any { return runtime.H("h1", nil, text) },
				"default": func(scope runtime.Props) any { return fmt.Sprintf("n=%v", scope["n"]) },
			})
		},
	}
	e.render(runtime.H(parent, nil, nil))

	if got, want := e.root.InnerHTML(), "<section><h1>T</h1>n=1</section>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	title.SetValue("U")
	e.flush()
	if got, want := e.root.InnerHTML(), "<section><h1>U</h1>n=1</section>"; got != want {
		t.Errorf("after update got %s, want %s", got, want)
	}
}

func TestPublicInstance(t *testing.T) {
	e := newEnv()
	var count *reactivity.Ref
	var proxy *runtime.PublicInstance
	var parentSeen any
	child := &runtime.Component{
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			parentSeen = ctx.Get("$parent")
			return nil
		},
	}
	comp := &runtime.Component{
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			count = ctx.Ref(1)
			proxy = ctx.Instance().Proxy()
			return map[string]any{"count": count, "label": "shadowed"}
		},
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			props := ctx.Get("$props").(runtime.Props)
			return runtime.H("p", nil, []runtime.VNode{
				runtime.CreateTextVNode(fmt.Sprintf("%v %v %v", ctx.Get("count"), ctx.Get("label"), props["label"])),
				runtime.H(child, nil, nil),
			})
		},
	}
	e.render(runtime.H(comp, runtime.Props{"label": "prop"}, nil))

	if got, want := e.root.Query("p").TextContent(), "1 shadowed prop"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if parentSeen != proxy {
		t.Error("$parent should be the parent's public instance")
	}
	if proxy.Get("$el") == nil {
		t.Error("$el should be set after mount")
	}
	if proxy.Get("nope") != nil {
		t.Error("unknown key should be nil")
	}

	if !proxy.Set("count", 9) {
		t.Error("setting a setup ref should succeed")
	}
	if count.Peek() != 9 {
		t.Errorf("got %v, want 9", count.Peek())
	}
	if proxy.Set("missing", 1) {
		t.Error("setting an unknown key should fail")
	}
}

func TestTemplateCompiledOncePerComponent(t *testing.T) {
	compiles := 0
	compile := func(tpl string) (runtime.RenderFunc, error) {
		compiles++
		return func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.H("p", nil, tpl+runtime.ToDisplayString(ctx.Get("n")))
		}, nil
	}
	e := newEnv(runtime.WithCompiler(compile))
	item := &runtime.Component{Template: "n="}
	e.render(runtime.H("div", nil, []runtime.VNode{
		runtime.H(item, runtime.Props{"n": 1}, nil),
		runtime.H(item, runtime.Props{"n": 2}, nil),
	}))

	if compiles != 1 {
		t.Errorf("got %d compiles, want 1", compiles)
	}
	if got, want := e.root.InnerHTML(), "<div><p>n=1</p><p>n=2</p></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMountPanics(t *testing.T) {
	tests := []struct {
		name string
		comp *runtime.Component
		opts []runtime.Option
		want error
	}{
		{"no render", &runtime.Component{}, nil, runtime.ErrNoRender},
		{"no compiler", &runtime.Component{Template: "<p></p>"}, nil, runtime.ErrNoCompiler},
		{
			"compile error",
			&runtime.Component{Template: "<p>"},
			[]runtime.Option{runtime.WithCompiler(func(string) (runtime.RenderFunc, error) {
				return nil, errors.New("bad template")
			})},
			runtime.ErrTemplate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(tt.opts...)
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, tt.want) {
					t.Errorf("got panic %v, want %v", err, tt.want)
				}
			}()
			e.render(runtime.H(tt.comp, nil, nil))
		})
	}
}

func TestApp(t *testing.T) {
	e := newEnv()
	var injected any
	comp := &runtime.Component{
		Name: "Root",
		Setup: func(_ *reactivity.Object, ctx *runtime.SetupContext) any {
			injected = ctx.Inject("api")
			return nil
		},
		Render: func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.H("h1", nil, runtime.ToDisplayString(ctx.Get("msg")))
		},
	}
	app := e.r.CreateApp(comp, runtime.Props{"msg": "hi"}).Provide("api", "v1")
	if err := app.Mount(e.root); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if err := app.Mount(e.root); err == nil {
		t.Error("second mount should fail")
	}

	if got, want := e.root.InnerHTML(), "<h1>hi</h1>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if injected != "v1" {
		t.Errorf("got %v, want v1", injected)
	}
	root := app.Root()
	if root == nil || !root.IsMounted() || root.Name() != "Root" {
		t.Fatalf("unexpected root instance %+v", root)
	}

	app.Unmount()
	if e.root.InnerHTML() != "" {
		t.Errorf("got %q after unmount, want empty", e.root.InnerHTML())
	}
	if !root.IsUnmounted() || app.Root() != nil {
		t.Error("app should be unmounted")
	}
}

func TestAppMountReturnsTemplateError(t *testing.T) {
	e := newEnv(runtime.WithCompiler(func(string) (runtime.RenderFunc, error) {
		return nil, errors.New("boom")
	}))
	err := e.r.CreateApp(&runtime.Component{Template: "<p>"}, nil).Mount(e.root)
	if !errors.Is(err, runtime.ErrTemplate) {
		t.Errorf("got %v, want %v", err, runtime.ErrTemplate)
	}
}
