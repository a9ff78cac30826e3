package compiler

import "strings"

// vueBinding is the name the preamble destructures helpers from.
const vueBinding = "Vue"

type codegen struct {
	strings.Builder
}

// Generate prints the render function source for a transformed root.
func Generate(root *Node) string {
	g := &codegen{}
	g.preamble(root)
	g.WriteString("function render(_ctx, _cache){")
	g.WriteString("return ")
	if root.Codegen == nil {
		g.WriteString("null")
	} else {
		g.genNode(root.Codegen)
	}
	g.WriteString("}")
	return g.String()
}

func (g *codegen) preamble(root *Node) {
	if len(root.Helpers) > 0 {
		aliases := make([]string, len(root.Helpers))
		for i, h := range root.Helpers {
			aliases[i] = h.Name() + ": " + h.Alias()
		}
		g.WriteString("const { " + strings.Join(aliases, ", ") + " } = " + vueBinding)
	}
	g.WriteString("\n")
	g.WriteString("return ")
}

func (g *codegen) genNode(n *Node) {
	switch n.Type {
	case NodeText:
		g.WriteString(quote(n.Content))
	case NodeInterpolation:
		g.WriteString(HelperToDisplayString.Alias() + "(")
		g.genNode(n.Expr)
		g.WriteString(")")
	case NodeSimpleExpression:
		g.WriteString(n.Content)
	case NodeCompoundExpression:
		for _, part := range n.Parts {
			switch p := part.(type) {
			case string:
				g.WriteString(p)
			case *Node:
				g.genNode(p)
			}
		}
	case NodeElement:
		if n.Codegen != nil {
			g.genNode(n.Codegen)
		}
	case NodeVNodeCall:
		g.genVNodeCall(n)
	}
}

func (g *codegen) genVNodeCall(n *Node) {
	g.WriteString(HelperCreateElementVNode.Alias() + "(")
	g.WriteString(n.Tag)
	g.WriteString(", null, ")
	switch {
	case len(n.Children) == 0:
		g.WriteString("null")
	case n.ArrayChildren:
		g.WriteString("[")
		for i, c := range n.Children {
			if i > 0 {
				g.WriteString(", ")
			}
			g.genNode(c)
		}
		g.WriteString("]")
	default:
		g.genNode(n.Children[0])
	}
	g.WriteString(")")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
