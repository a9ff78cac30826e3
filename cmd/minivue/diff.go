package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue/el"
	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/memdom"
	"github.com/vango-dev/minivue/pkg/runtime"
)

func diffCmd() *cobra.Command {
	var (
		from, to string
		unkeyed  bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the host operations of a list update",
		Long: `Render a <ul> whose <li> children carry the keys in --from, update it
to the keys in --to, and print every host operation the update caused.

Examples:
  minivue diff --from 1,2,3 --to 3,1,2
  minivue diff --from a,b,c,d --to d,b,e --unkeyed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" && to == "" {
				return errors.New("X003").WithDetail("pass --from and --to")
			}
			prev, err := parseKeys(from)
			if err != nil {
				return err
			}
			next, err := parseKeys(to)
			if err != nil {
				return err
			}

			res := diffLists(prev, next, !unkeyed)
			printDiff(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Keys before the update, comma separated")
	cmd.Flags().StringVar(&to, "to", "", "Keys after the update, comma separated")
	cmd.Flags().BoolVar(&unkeyed, "unkeyed", false, "Omit keys so children are patched by index")

	return cmd
}

type diffResult struct {
	before, after string
	ops           []memdom.Op
	host          *memdom.Host
}

func keyedList(keys []any, keyed bool) runtime.VNode {
	return el.Ul(el.Range(keys, func(k any, _ int) runtime.VNode {
		if keyed {
			return el.Li(el.Key(k), fmt.Sprint(k))
		}
		return el.Li(fmt.Sprint(k))
	}))
}

func diffLists(prev, next []any, keyed bool) diffResult {
	host := memdom.New()
	root := host.NewContainer("div")
	r := runtime.NewRenderer(host)

	r.Render(keyedList(prev, keyed), root)
	before := root.InnerHTML()
	host.ResetOps()

	r.Render(keyedList(next, keyed), root)
	return diffResult{
		before: before,
		after:  root.InnerHTML(),
		ops:    host.Ops(),
		host:   host,
	}
}

func printDiff(w io.Writer, res diffResult) {
	fmt.Fprintf(w, "before: %s\nafter:  %s\n\n", res.before, res.after)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetTitle("Host operations")
	tbl.AppendHeader(table.Row{"#", "op", "node", "parent", "anchor", "key", "value"})
	for i, op := range res.ops {
		tbl.AppendRow(table.Row{i + 1, op.Kind, op.Node, blankZero(op.Parent), blankZero(op.Anchor), op.Key, op.Value})
	}
	tbl.AppendFooter(table.Row{"", "total", len(res.ops)})
	tbl.Render()

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.AppendHeader(table.Row{"create", "insert", "move", "remove", "set text"})
	summary.AppendRow(table.Row{
		res.host.Count(memdom.OpCreateElement) + res.host.Count(memdom.OpCreateText),
		res.host.Count(memdom.OpInsert),
		res.host.Count(memdom.OpMove),
		res.host.Count(memdom.OpRemove),
		res.host.Count(memdom.OpSetElementText) + res.host.Count(memdom.OpSetText),
	})
	summary.Render()
}

func blankZero(n int) any {
	if n == 0 {
		return ""
	}
	return n
}
