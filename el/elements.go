package el

import (
	"fmt"

	"github.com/vango-dev/minivue/pkg/runtime"
)

// Element builds a tag with the given arguments. Accepted arguments are
// nil, Attr, []Attr, Props, VNode, []VNode, and string. Anything else
// panics.
func Element(tag string, args ...any) VNode {
	props, children := collect(args)
	return runtime.H(tag, props, children)
}

func collect(args []any) (Props, any) {
	var props Props
	set := func(k string, v any) {
		if props == nil {
			props = make(Props)
		}
		props[k] = v
	}

	var nodes []VNode
	var texts []string
	onlyText := true
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attr:
			if v.Key != "" {
				set(v.Key, v.Value)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					set(a.Key, a.Value)
				}
			}
		case Props:
			for k, val := range v {
				set(k, val)
			}
		case string:
			texts = append(texts, v)
			nodes = append(nodes, runtime.CreateTextVNode(v))
		case VNode:
			onlyText = false
			nodes = append(nodes, v)
		case []VNode:
			onlyText = false
			for _, c := range v {
				if c != nil {
					nodes = append(nodes, c)
				}
			}
		default:
			panic(fmt.Sprintf("el: unsupported argument of type %T", arg))
		}
	}

	switch {
	case len(nodes) == 0:
		return props, nil
	case onlyText && len(texts) == 1:
		return props, texts[0]
	}
	return props, nodes
}

func Div(args ...any) VNode     { return Element("div", args...) }
func Span(args ...any) VNode    { return Element("span", args...) }
func P(args ...any) VNode       { return Element("p", args...) }
func A(args ...any) VNode       { return Element("a", args...) }
func B(args ...any) VNode       { return Element("b", args...) }
func I(args ...any) VNode       { return Element("i", args...) }
func Em(args ...any) VNode      { return Element("em", args...) }
func Strong(args ...any) VNode  { return Element("strong", args...) }
func Code(args ...any) VNode    { return Element("code", args...) }
func Pre(args ...any) VNode     { return Element("pre", args...) }
func H1(args ...any) VNode      { return Element("h1", args...) }
func H2(args ...any) VNode      { return Element("h2", args...) }
func H3(args ...any) VNode      { return Element("h3", args...) }
func Ul(args ...any) VNode      { return Element("ul", args...) }
func Ol(args ...any) VNode      { return Element("ol", args...) }
func Li(args ...any) VNode      { return Element("li", args...) }
func Section(args ...any) VNode { return Element("section", args...) }
func Header(args ...any) VNode  { return Element("header", args...) }
func Footer(args ...any) VNode  { return Element("footer", args...) }
func Main(args ...any) VNode    { return Element("main", args...) }
func Nav(args ...any) VNode     { return Element("nav", args...) }
func Article(args ...any) VNode { return Element("article", args...) }
func Button(args ...any) VNode  { return Element("button", args...) }
func Input(args ...any) VNode   { return Element("input", args...) }
func Label(args ...any) VNode   { return Element("label", args...) }
func Form(args ...any) VNode    { return Element("form", args...) }
func Table(args ...any) VNode   { return Element("table", args...) }
func Tr(args ...any) VNode      { return Element("tr", args...) }
func Td(args ...any) VNode      { return Element("td", args...) }
func Th(args ...any) VNode      { return Element("th", args...) }
func Img(args ...any) VNode     { return Element("img", args...) }
func Br(args ...any) VNode      { return Element("br", args...) }
func Hr(args ...any) VNode      { return Element("hr", args...) }
