package compiler

import (
	"reflect"
	"strings"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
)

// Sentinels for errors.Is against BaseParse and Compile errors.
var (
	ErrMissingEndTag             error = errors.New("C001")
	ErrUnexpectedEndTag          error = errors.New("C002")
	ErrUnterminatedInterpolation error = errors.New("C003")
	ErrMalformedTag              error = errors.New("C004")
	ErrEmptyInterpolation        error = errors.New("C005")
)

// Result is the output of the full pipeline.
type Result struct {
	AST    *Node
	Code   string
	Render runtime.RenderFunc
}

// BaseCompile parses, transforms, and generates template.
func BaseCompile(template string) (*Result, error) {
	root, err := BaseParse(template)
	if err != nil {
		return nil, err
	}
	Transform(root, TransformOptions{NodeTransforms: DefaultTransforms()})
	return &Result{
		AST:    root,
		Code:   Generate(root),
		Render: buildRender(root),
	}, nil
}

// Compile turns template into a render function. It satisfies
// runtime.CompileFunc.
func Compile(template string) (runtime.RenderFunc, error) {
	res, err := BaseCompile(template)
	if err != nil {
		return nil, err
	}
	return res.Render, nil
}

type valueFunc func(ctx runtime.RenderContext) any

func buildRender(root *Node) runtime.RenderFunc {
	if root.Codegen == nil {
		return func(runtime.RenderContext) runtime.VNode { return nil }
	}
	if root.Codegen.Type == NodeVNodeCall {
		return runtime.RenderFunc(buildVNode(root.Codegen))
	}
	text := buildText(root.Codegen)
	return func(ctx runtime.RenderContext) runtime.VNode {
		return runtime.CreateTextVNode(text(ctx))
	}
}

func buildVNode(n *Node) func(ctx runtime.RenderContext) runtime.VNode {
	var tag any = strings.Trim(n.Tag, "'")
	if n.Tag == HelperFragment.Alias() {
		tag = runtime.Fragment
	}

	switch {
	case len(n.Children) == 0:
		return func(runtime.RenderContext) runtime.VNode {
			return runtime.CreateElementVNode(tag, nil, nil)
		}

	case !n.ArrayChildren:
		text := buildText(n.Children[0])
		return func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.CreateElementVNode(tag, nil, text(ctx))
		}
	}

	children := make([]func(runtime.RenderContext) runtime.VNode, len(n.Children))
	for i, c := range n.Children {
		if c.Type == NodeVNodeCall {
			children[i] = buildVNode(c)
			continue
		}
		text := buildText(c)
		children[i] = func(ctx runtime.RenderContext) runtime.VNode {
			return runtime.CreateTextVNode(text(ctx))
		}
	}
	return func(ctx runtime.RenderContext) runtime.VNode {
		list := make([]runtime.VNode, len(children))
		for i, build := range children {
			list[i] = build(ctx)
		}
		return runtime.CreateElementVNode(tag, nil, list)
	}
}

// buildText compiles a text, interpolation, or compound node to a func
// producing its display string.
func buildText(n *Node) func(ctx runtime.RenderContext) string {
	switch n.Type {
	case NodeText:
		s := n.Content
		return func(runtime.RenderContext) string { return s }

	case NodeInterpolation:
		value := buildExpression(n.Expr)
		return func(ctx runtime.RenderContext) string {
			return runtime.ToDisplayString(value(ctx))
		}

	case NodeCompoundExpression:
		var parts []func(runtime.RenderContext) string
		for _, p := range n.Parts {
			if node, ok := p.(*Node); ok {
				parts = append(parts, buildText(node))
			}
		}
		return func(ctx runtime.RenderContext) string {
			var b strings.Builder
			for _, part := range parts {
				b.WriteString(part(ctx))
			}
			return b.String()
		}
	}
	return func(runtime.RenderContext) string { return "" }
}

// buildExpression resolves a dotted binding path against the context.
func buildExpression(n *Node) valueFunc {
	path := strings.Split(strings.TrimPrefix(n.Content, "_ctx."), ".")
	return func(ctx runtime.RenderContext) any {
		v := ctx.Get(strings.TrimSpace(path[0]))
		for _, field := range path[1:] {
			v = lookupField(v, strings.TrimSpace(field))
		}
		return v
	}
}

func lookupField(v any, field string) any {
	v = reactivity.Unref(v)
	switch x := v.(type) {
	case nil:
		return nil
	case *reactivity.Object:
		return x.Get(field)
	case *reactivity.RefProxy:
		return x.Get(field)
	case map[string]any:
		return x[field]
	case runtime.Props:
		return x[field]
	case runtime.RenderContext:
		return x.Get(field)
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Struct:
		if f := rv.FieldByName(field); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			if e := rv.MapIndex(reflect.ValueOf(field).Convert(rv.Type().Key())); e.IsValid() {
				return e.Interface()
			}
		}
	}
	return nil
}
