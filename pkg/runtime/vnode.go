package runtime

import (
	"github.com/vango-dev/minivue/internal/errors"
)

// ShapeFlags describe a vnode's kind and the shape of its children.
type ShapeFlags uint8

const (
	ShapeElement ShapeFlags = 1 << iota
	ShapeStatefulComponent
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotChildren
)

// Has reports whether all bits of flag are set.
func (s ShapeFlags) Has(flag ShapeFlags) bool {
	return s&flag == flag
}

// Props are the attributes, listeners, and component props of a vnode.
// The "key" entry is the vnode's identity among its siblings.
type Props map[string]any

// Sentinel selects a special vnode kind in H.
type Sentinel uint8

const (
	// Fragment renders its children directly into the parent.
	Fragment Sentinel = iota + 1
	// Text renders its string children as a raw text node.
	Text
)

// VNode is a node in a virtual tree.
type VNode interface {
	// Shape returns the node's shape flags.
	Shape() ShapeFlags
	// Key returns the node's sibling identity, or nil.
	Key() any
	// El returns the host node this vnode owns once mounted.
	El() HostNode

	setEl(HostNode)
}

// ElementNode is a host element.
type ElementNode struct {
	Tag      string
	Props    Props
	Text     string
	Children []VNode

	key   any
	shape ShapeFlags
	el    HostNode
}

func (n *ElementNode) Shape() ShapeFlags { return n.shape }
func (n *ElementNode) Key() any          { return n.key }
func (n *ElementNode) El() HostNode      { return n.el }
func (n *ElementNode) setEl(el HostNode) { n.el = el }

// ComponentNode is a use of a component definition.
type ComponentNode struct {
	Component *Component
	Props     Props
	Slots     Slots

	// Children holds array or text children passed to a component. They
	// are not slots; use Slots for content projection.
	Children []VNode
	Text     string

	key      any
	shape    ShapeFlags
	el       HostNode
	instance *Instance
	app      *App
}

func (n *ComponentNode) Shape() ShapeFlags { return n.shape }
func (n *ComponentNode) Key() any          { return n.key }
func (n *ComponentNode) El() HostNode      { return n.el }
func (n *ComponentNode) setEl(el HostNode) { n.el = el }

// Instance returns the live component instance once mounted.
func (n *ComponentNode) Instance() *Instance { return n.instance }

// TextNode is a raw text host node.
type TextNode struct {
	Content string

	key any
	el  HostNode
}

func (n *TextNode) Shape() ShapeFlags { return ShapeTextChildren }
func (n *TextNode) Key() any          { return n.key }
func (n *TextNode) El() HostNode      { return n.el }
func (n *TextNode) setEl(el HostNode) { n.el = el }

// FragmentNode renders Children between two empty text anchors.
type FragmentNode struct {
	Children []VNode

	key any
	// el is the start anchor, end the end anchor.
	el  HostNode
	end HostNode
}

func (n *FragmentNode) Shape() ShapeFlags { return ShapeArrayChildren }
func (n *FragmentNode) Key() any          { return n.key }
func (n *FragmentNode) El() HostNode      { return n.el }
func (n *FragmentNode) setEl(el HostNode) { n.el = el }

// H creates a vnode. typ is a tag name, a *Component, Fragment, or Text.
// children is nil, a string, a VNode, a []VNode, or for components Slots or
// a single Slot used as the default slot.
func H(typ any, props Props, children any) VNode {
	key := props["key"]

	switch t := typ.(type) {
	case string:
		n := &ElementNode{Tag: t, Props: props, key: key, shape: ShapeElement}
		n.Text, n.Children, n.shape = normalizeChildren(children, n.shape, "<"+t+">")
		return n

	case *Component:
		if t == nil {
			panic(errors.New("V001").WithDetail("nil *Component"))
		}
		n := &ComponentNode{Component: t, Props: props, key: key, shape: ShapeStatefulComponent}
		switch c := children.(type) {
		case Slots:
			n.Slots = c
			n.shape |= ShapeSlotChildren
		case Slot:
			n.Slots = Slots{"default": c}
			n.shape |= ShapeSlotChildren
		case func(Props) any:
			n.Slots = Slots{"default": c}
			n.shape |= ShapeSlotChildren
		default:
			n.Text, n.Children, n.shape = normalizeChildren(children, n.shape, t.displayName())
		}
		return n

	case Sentinel:
		switch t {
		case Fragment:
			n := &FragmentNode{key: key}
			text, list, shape := normalizeChildren(children, 0, "Fragment")
			if shape.Has(ShapeTextChildren) {
				list = []VNode{CreateTextVNode(text)}
			}
			n.Children = list
			return n
		case Text:
			s, ok := children.(string)
			if !ok && children != nil {
				panic(errors.New("V002").WithDetailf("Text takes string children, got %T", children))
			}
			return &TextNode{Content: s, key: key}
		}
	}

	panic(errors.New("V001").WithDetailf("got %T", typ))
}

// CreateVNode is H.
func CreateVNode(typ any, props Props, children any) VNode {
	return H(typ, props, children)
}

// CreateElementVNode is H, used by compiled templates.
func CreateElementVNode(typ any, props Props, children any) VNode {
	return H(typ, props, children)
}

// CreateTextVNode creates a raw text vnode.
func CreateTextVNode(text string) VNode {
	return &TextNode{Content: text}
}

func normalizeChildren(children any, shape ShapeFlags, owner string) (string, []VNode, ShapeFlags) {
	switch c := children.(type) {
	case nil:
		return "", nil, shape
	case string:
		return c, nil, shape | ShapeTextChildren
	case []VNode:
		list := make([]VNode, 0, len(c))
		for _, child := range c {
			if child != nil {
				list = append(list, child)
			}
		}
		return "", list, shape | ShapeArrayChildren
	case VNode:
		return "", []VNode{c}, shape | ShapeArrayChildren
	}
	panic(errors.New("V002").WithDetailf("%s got children of type %T", owner, children))
}

// isSameVNodeType reports whether n2 can be patched onto n1 in place.
func isSameVNodeType(n1, n2 VNode) bool {
	if !valueEqual(n1.Key(), n2.Key()) {
		return false
	}
	switch a := n1.(type) {
	case *ElementNode:
		b, ok := n2.(*ElementNode)
		return ok && a.Tag == b.Tag
	case *ComponentNode:
		b, ok := n2.(*ComponentNode)
		return ok && a.Component == b.Component
	case *TextNode:
		_, ok := n2.(*TextNode)
		return ok
	case *FragmentNode:
		_, ok := n2.(*FragmentNode)
		return ok
	}
	return false
}
