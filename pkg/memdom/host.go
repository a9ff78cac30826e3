package memdom

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/vango-dev/minivue/pkg/runtime"
)

var _ runtime.Host = (*Host)(nil)

// Host owns a set of nodes and records every mutation made through it.
type Host struct {
	nextID    int
	ops       []Op
	observers map[int]func(Op)
	nextObs   int
}

// New creates an empty host.
func New() *Host {
	return &Host{observers: make(map[int]func(Op))}
}

// NewContainer creates a detached element to render into. Its creation is
// not recorded.
func (h *Host) NewContainer(tag string) *Node {
	return h.newNode(ElementNode, tag, "")
}

func (h *Host) newNode(typ NodeType, tag, text string) *Node {
	h.nextID++
	return &Node{ID: h.nextID, Type: typ, Tag: tag, Text: text}
}

func (h *Host) record(op Op) {
	h.ops = append(h.ops, op)
	for _, fn := range h.observers {
		fn(op)
	}
}

// Ops returns a copy of the recorded operations.
func (h *Host) Ops() []Op {
	return append([]Op(nil), h.ops...)
}

// ResetOps clears the recorded operations.
func (h *Host) ResetOps() {
	h.ops = nil
}

// Count returns how many recorded operations have kind k.
func (h *Host) Count(k OpKind) int {
	n := 0
	for _, op := range h.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Observe calls fn for every operation recorded from now on. The returned
// func removes the observer.
func (h *Host) Observe(fn func(Op)) (cancel func()) {
	id := h.nextObs
	h.nextObs++
	h.observers[id] = fn
	return func() { delete(h.observers, id) }
}

func node(v runtime.HostNode) *Node {
	if v == nil {
		return nil
	}
	n, ok := v.(*Node)
	if !ok {
		panic(fmt.Sprintf("memdom: foreign host node %T", v))
	}
	return n
}

func id(n *Node) int {
	if n == nil {
		return 0
	}
	return n.ID
}

// CreateElement creates a detached element.
func (h *Host) CreateElement(tag string) runtime.HostNode {
	n := h.newNode(ElementNode, tag, "")
	h.record(Op{Kind: OpCreateElement, Node: n.ID, Value: tag})
	return n
}

// CreateText creates a detached text node.
func (h *Host) CreateText(text string) runtime.HostNode {
	n := h.newNode(TextNode, "", text)
	h.record(Op{Kind: OpCreateText, Node: n.ID, Value: text})
	return n
}

// SetText replaces a text node's content.
func (h *Host) SetText(v runtime.HostNode, text string) {
	n := node(v)
	n.Text = text
	h.record(Op{Kind: OpSetText, Node: n.ID, Value: text})
}

// PatchProp binds onXxx keys as listeners for the lowercased event name
// and sets every other key as a stringified attribute. A nil next value,
// including a typed nil such as a nil func, removes the listener or
// attribute.
func (h *Host) PatchProp(v runtime.HostNode, key string, _, next any) {
	n := node(v)
	if isNil(next) {
		next = nil
	}
	if event, ok := listenerEvent(key); ok {
		if next == nil {
			delete(n.listeners, event)
			h.record(Op{Kind: OpUnbindListener, Node: n.ID, Key: event})
			return
		}
		if n.listeners == nil {
			n.listeners = make(map[string]any)
		}
		n.listeners[event] = next
		h.record(Op{Kind: OpBindListener, Node: n.ID, Key: event})
		return
	}

	if next == nil {
		delete(n.attrs, key)
		h.record(Op{Kind: OpRemoveAttr, Node: n.ID, Key: key})
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	s := attrToString(next)
	n.attrs[key] = s
	h.record(Op{Kind: OpSetAttr, Node: n.ID, Key: key, Value: s})
}

// Insert places child before anchor in parent, or appends it. An attached
// child is moved and recorded as OpMove.
func (h *Host) Insert(childV, parentV, anchorV runtime.HostNode) {
	child, parent, anchor := node(childV), node(parentV), node(anchorV)
	kind := OpInsert
	if child.Parent != nil {
		kind = OpMove
		child.detach()
	}
	parent.insertBefore(child, anchor)
	h.record(Op{Kind: kind, Node: child.ID, Parent: parent.ID, Anchor: id(anchor)})
}

// Remove detaches child from its parent.
func (h *Host) Remove(v runtime.HostNode) {
	n := node(v)
	parent := n.Parent
	if parent == nil {
		return
	}
	n.detach()
	h.record(Op{Kind: OpRemove, Node: n.ID, Parent: parent.ID})
}

// SetElementText replaces every child of el with a single text node, or
// with nothing when text is empty.
func (h *Host) SetElementText(v runtime.HostNode, text string) {
	el := node(v)
	for _, c := range el.Children {
		c.Parent = nil
	}
	el.Children = nil
	if text != "" {
		t := h.newNode(TextNode, "", text)
		t.Parent = el
		el.Children = []*Node{t}
	}
	h.record(Op{Kind: OpSetElementText, Node: el.ID, Value: text})
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ParentNode returns the node's parent.
func (h *Host) ParentNode(v runtime.HostNode) runtime.HostNode {
	if p := node(v).Parent; p != nil {
		return p
	}
	return nil
}

// NextSibling returns the node after v.
func (h *Host) NextSibling(v runtime.HostNode) runtime.HostNode {
	if s := node(v).NextSibling(); s != nil {
		return s
	}
	return nil
}

// Dispatch calls the listener n has bound for event. It reports whether a
// listener was found.
func (h *Host) Dispatch(n *Node, event string, args ...any) bool {
	handler := n.listeners[strings.ToLower(event)]
	if handler == nil {
		return false
	}
	switch fn := handler.(type) {
	case func():
		fn()
	case func(any):
		var first any
		if len(args) > 0 {
			first = args[0]
		}
		fn(first)
	case func(...any):
		fn(args...)
	default:
		rv := reflect.ValueOf(handler)
		if rv.Kind() != reflect.Func || rv.Type().NumIn() != 0 {
			return false
		}
		rv.Call(nil)
	}
	return true
}

func listenerEvent(key string) (string, bool) {
	if len(key) < 3 || !strings.HasPrefix(key, "on") {
		return "", false
	}
	if !unicode.IsUpper(rune(key[2])) {
		return "", false
	}
	return strings.ToLower(key[2:]), true
}

func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
