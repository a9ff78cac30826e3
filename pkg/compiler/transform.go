package compiler

// NodeTransform inspects or rewrites node on the way down. A non-nil
// return value is called on the way back up, after the node's children
// have been transformed.
type NodeTransform func(node *Node, ctx *TransformContext) (onExit func())

// TransformOptions configures Transform.
type TransformOptions struct {
	NodeTransforms []NodeTransform
}

// TransformContext is shared by the transforms of one Transform call.
type TransformContext struct {
	Root    *Node
	helpers []Helper
	seen    map[Helper]bool
}

// Helper records that generated code uses h.
func (c *TransformContext) Helper(h Helper) {
	if c.seen[h] {
		return
	}
	c.seen[h] = true
	c.helpers = append(c.helpers, h)
}

// DefaultTransforms are the transforms Compile runs, in order.
func DefaultTransforms() []NodeTransform {
	return []NodeTransform{TransformExpression, TransformElement, TransformText}
}

// Transform walks root depth first, running every node transform, then
// sets root.Codegen and root.Helpers.
func Transform(root *Node, opts TransformOptions) {
	ctx := &TransformContext{Root: root, seen: make(map[Helper]bool)}
	traverseNode(root, ctx, opts.NodeTransforms)
	createRootCodegen(root, ctx)
	root.Helpers = ctx.helpers
}

func traverseNode(node *Node, ctx *TransformContext, transforms []NodeTransform) {
	var exits []func()
	for _, t := range transforms {
		if onExit := t(node, ctx); onExit != nil {
			exits = append(exits, onExit)
		}
	}

	switch node.Type {
	case NodeInterpolation:
		ctx.Helper(HelperToDisplayString)
	case NodeRoot, NodeElement:
		for _, child := range node.Children {
			traverseNode(child, ctx, transforms)
		}
	}

	for i := len(exits) - 1; i >= 0; i-- {
		exits[i]()
	}
}

// createRootCodegen picks what the render function returns: the single
// root child, or a fragment over several.
func createRootCodegen(root *Node, ctx *TransformContext) {
	switch len(root.Children) {
	case 0:
		root.Codegen = nil
	case 1:
		root.Codegen = codegenOf(root.Children[0])
	default:
		ctx.Helper(HelperFragment)
		ctx.Helper(HelperCreateElementVNode)
		root.Codegen = &Node{
			Type:          NodeVNodeCall,
			Tag:           HelperFragment.Alias(),
			Children:      codegenList(root.Children),
			ArrayChildren: true,
		}
	}
}

func codegenOf(n *Node) *Node {
	if n.Type == NodeElement && n.Codegen != nil {
		return n.Codegen
	}
	return n
}

func codegenList(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = codegenOf(n)
	}
	return out
}

// TransformExpression prefixes interpolated binding paths with _ctx.
func TransformExpression(node *Node, _ *TransformContext) func() {
	if node.Type == NodeInterpolation && node.Expr != nil {
		node.Expr.Content = "_ctx." + node.Expr.Content
	}
	return nil
}

// TransformElement builds the vnode call for an element once its children
// are transformed. Several children become a list.
func TransformElement(node *Node, ctx *TransformContext) func() {
	if node.Type != NodeElement {
		return nil
	}
	return func() {
		ctx.Helper(HelperCreateElementVNode)
		call := &Node{Type: NodeVNodeCall, Tag: "'" + node.Tag + "'", Loc: node.Loc}
		switch len(node.Children) {
		case 0:
		case 1:
			call.Children = []*Node{codegenOf(node.Children[0])}
			call.ArrayChildren = node.Children[0].Type == NodeElement
		default:
			call.Children = codegenList(node.Children)
			call.ArrayChildren = true
		}
		node.Codegen = call
	}
}

// TransformText merges adjacent text and interpolation children into one
// compound expression joined with +.
func TransformText(node *Node, _ *TransformContext) func() {
	if node.Type != NodeElement && node.Type != NodeRoot {
		return nil
	}
	return func() {
		children := node.Children
		var merged []*Node
		var current *Node
		for _, child := range children {
			if !isText(child) {
				current = nil
				merged = append(merged, child)
				continue
			}
			if current == nil {
				current = child
				merged = append(merged, child)
				continue
			}
			if current.Type != NodeCompoundExpression {
				compound := &Node{Type: NodeCompoundExpression, Parts: []any{current}, Loc: current.Loc}
				merged[len(merged)-1] = compound
				current = compound
			}
			current.Parts = append(current.Parts, " + ", child)
		}
		node.Children = merged
	}
}

func isText(n *Node) bool {
	return n.Type == NodeText || n.Type == NodeInterpolation
}
