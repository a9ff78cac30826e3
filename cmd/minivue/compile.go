package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue/pkg/compiler"
)

func compileCmd() *cobra.Command {
	var (
		expr    string
		showAST bool
	)

	cmd := &cobra.Command{
		Use:   "compile [file|-]",
		Short: "Print the code generated for a template",
		Long: `Compile a template and print the generated render function.

Examples:
  minivue compile counter.html
  minivue compile -e "<p>{{msg}}</p>"
  echo "<div>hi</div>" | minivue compile -
  minivue compile --ast counter.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := readTemplate(cmd.InOrStdin(), args, expr)
			if err != nil {
				return err
			}

			if showAST {
				root, err := compiler.BaseParse(tpl)
				if err != nil {
					return err
				}
				l := list.NewWriter()
				l.SetStyle(list.StyleConnectedRounded)
				appendAST(l, root)
				fmt.Fprintln(cmd.OutOrStdout(), l.Render())
				return nil
			}

			res, err := compiler.BaseCompile(tpl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "Template source given inline")
	cmd.Flags().BoolVar(&showAST, "ast", false, "Print the parsed AST instead of code")

	return cmd
}

func appendAST(l list.Writer, n *compiler.Node) {
	switch n.Type {
	case compiler.NodeElement:
		l.AppendItem(fmt.Sprintf("%s <%s> %d:%d", n.Type, n.Tag, n.Loc.Line, n.Loc.Column))
	case compiler.NodeText:
		l.AppendItem(fmt.Sprintf("%s %q", n.Type, n.Content))
	case compiler.NodeInterpolation:
		l.AppendItem(fmt.Sprintf("%s {{ %s }}", n.Type, n.Expr.Content))
	default:
		l.AppendItem(n.Type.String())
	}
	if len(n.Children) == 0 {
		return
	}
	l.Indent()
	for _, c := range n.Children {
		appendAST(l, c)
	}
	l.UnIndent()
}
