package compiler

// NodeType is the kind of an AST node.
type NodeType uint8

const (
	NodeInterpolation NodeType = iota
	NodeSimpleExpression
	NodeElement
	NodeText
	NodeRoot
	NodeCompoundExpression
	NodeVNodeCall
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case NodeInterpolation:
		return "Interpolation"
	case NodeSimpleExpression:
		return "SimpleExpression"
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeRoot:
		return "Root"
	case NodeCompoundExpression:
		return "CompoundExpression"
	case NodeVNodeCall:
		return "VNodeCall"
	default:
		return "Unknown"
	}
}

// Position is a 1-based line and column in the template.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Node is an AST node. Which fields are meaningful depends on Type:
//
//   - Text: Content is the raw text.
//   - Interpolation: Expr is the SimpleExpression inside {{ }}.
//   - SimpleExpression: Content is the expression source.
//   - Element: Tag, Children, and Codegen once transformed.
//   - CompoundExpression: Parts holds *Node and string operands.
//   - VNodeCall: Tag (quoted), Children, and ArrayChildren.
//   - Root: Children, Helpers, and Codegen once transformed.
type Node struct {
	Type     NodeType
	Tag      string
	Content  string
	Expr     *Node
	Children []*Node
	Parts    []any
	Loc      Position

	// Codegen is the node to generate in place of an Element or Root.
	Codegen *Node

	// ArrayChildren marks a VNodeCall whose children are a list.
	ArrayChildren bool

	Helpers []Helper
}

// Helper is a runtime function generated code refers to.
type Helper uint8

const (
	HelperToDisplayString Helper = iota + 1
	HelperCreateElementVNode
	HelperFragment
)

// Name returns the helper's runtime export name.
func (h Helper) Name() string {
	switch h {
	case HelperToDisplayString:
		return "toDisplayString"
	case HelperCreateElementVNode:
		return "createElementVNode"
	case HelperFragment:
		return "Fragment"
	default:
		return ""
	}
}

// Alias returns the local name generated code binds the helper to.
func (h Helper) Alias() string {
	return "_" + h.Name()
}
