package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	goruntime "runtime"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/memdom"
	"github.com/vango-dev/minivue/pkg/runtime"
)

// benchCase derives the updated key list from the base list.
type benchCase struct {
	name   string
	update func(base []any) []any
}

var benchCases = []benchCase{
	{"reverse", func(base []any) []any {
		out := slices.Clone(base)
		slices.Reverse(out)
		return out
	}},
	{"shuffle", func(base []any) []any {
		out := slices.Clone(base)
		rng := rand.New(rand.NewPCG(1, uint64(len(base))))
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}},
	{"swap ends", func(base []any) []any {
		out := slices.Clone(base)
		if len(out) > 1 {
			out[0], out[len(out)-1] = out[len(out)-1], out[0]
		}
		return out
	}},
	{"append", func(base []any) []any {
		return append(slices.Clone(base), len(base))
	}},
	{"prepend", func(base []any) []any {
		return append([]any{len(base)}, base...)
	}},
	{"remove middle", func(base []any) []any {
		out := slices.Clone(base)
		return slices.Delete(out, len(out)/2, len(out)/2+1)
	}},
	{"replace all", func(base []any) []any {
		out := make([]any, len(base))
		for i := range out {
			out[i] = len(base) + i
		}
		return out
	}},
}

type benchRow struct {
	name    string
	size    int
	calc    *tachymeter.Metrics
	hostOps int
	alloc   uint64
}

func benchCmd(flags *globalFlags) *cobra.Command {
	var (
		sizes      []int
		iterations int
		only       string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time keyed list updates",
		Long: `Time how long the renderer takes to apply keyed list updates of
several shapes, and report latency percentiles, host operations, and
allocations per update.

Sizes and iteration counts default to the bench section of the config.

Examples:
  minivue bench
  minivue bench --sizes 100,10000 --iterations 50
  minivue bench --case reverse --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load()
			if err != nil {
				return err
			}
			if len(sizes) == 0 {
				sizes = cfg.Bench.Sizes
			}
			if iterations <= 0 {
				iterations = cfg.Bench.Iterations
			}

			cases := benchCases
			if only != "" {
				cases = nil
				for _, c := range benchCases {
					if c.name == only {
						cases = append(cases, c)
					}
				}
				if len(cases) == 0 {
					return errors.Newf(errors.CategoryCLI, "unknown bench case %q", only)
				}
			}

			var rows []benchRow
			for _, size := range sizes {
				for _, c := range cases {
					rows = append(rows, runBench(c, size, iterations))
				}
			}
			return printBench(cmd.OutOrStdout(), rows, iterations, format)
		},
	}

	cmd.Flags().IntSliceVar(&sizes, "sizes", nil, "List sizes (default from config)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Timed updates per case (default from config)")
	cmd.Flags().StringVar(&only, "case", "", "Run a single case by name")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, markdown, csv")

	return cmd
}

func runBench(c benchCase, size, iterations int) benchRow {
	base := make([]any, size)
	for i := range base {
		base[i] = i
	}
	updated := c.update(base)

	host := memdom.New()
	root := host.NewContainer("div")
	r := runtime.NewRenderer(host)
	tach := tachymeter.New(&tachymeter.Config{Size: iterations})

	var (
		ops   int
		alloc uint64
		ms    goruntime.MemStats
	)
	for i := 0; i < iterations; i++ {
		r.Render(keyedList(base, true), root)
		next := keyedList(updated, true)
		host.ResetOps()

		goruntime.ReadMemStats(&ms)
		before := ms.TotalAlloc
		start := time.Now()
		r.Render(next, root)
		tach.AddTime(time.Since(start))
		goruntime.ReadMemStats(&ms)

		alloc += ms.TotalAlloc - before
		ops += len(host.Ops())
	}

	return benchRow{
		name:    c.name,
		size:    size,
		calc:    tach.Calc(),
		hostOps: ops / iterations,
		alloc:   alloc / uint64(iterations),
	}
}

func printBench(w io.Writer, rows []benchRow, iterations int, format string) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Keyed list updates (%s iterations)", humanize.Comma(int64(iterations)))
	tbl.AppendHeader(table.Row{"case", "size", "avg", "min", "p75", "p99", "max", "updates/s", "host ops", "alloc/op"})
	for _, row := range rows {
		tbl.AppendRow(table.Row{
			row.name,
			humanize.Comma(int64(row.size)),
			row.calc.Time.Avg,
			row.calc.Time.Min,
			row.calc.Time.P75,
			row.calc.Time.P99,
			row.calc.Time.Max,
			humanize.Commaf(float64(int64(row.calc.Rate.Second))),
			row.hostOps,
			humanize.Bytes(row.alloc),
		})
	}

	var out string
	switch format {
	case "table", "":
		out = tbl.Render()
	case "markdown":
		out = tbl.RenderMarkdown()
	case "csv":
		out = tbl.RenderCSV()
	default:
		return errors.Newf(errors.CategoryCLI, "unknown format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
