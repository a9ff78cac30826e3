package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue"
	"github.com/vango-dev/minivue/pkg/reactivity"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		expr     string
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a template to HTML",
		Long: `Mount a template as a root component and print the resulting HTML.

Bindings are read from a JSON or YAML object and exposed to the template
as setup state. Nested objects are readable with dotted paths.

Examples:
  minivue render -e "<p>{{user.name}}</p>" --data user.yaml
  minivue render page.html --data state.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := flags.load()
			if err != nil {
				return err
			}
			tpl, err := readTemplate(cmd.InOrStdin(), args, expr)
			if err != nil {
				return err
			}
			data, err := readBindings(dataPath)
			if err != nil {
				return err
			}

			app := minivue.CreateApp(templateComponent(tpl, data), nil, minivue.WithLogger(logger))
			if err := app.Mount(nil); err != nil {
				return err
			}
			defer app.Unmount()

			fmt.Fprintln(cmd.OutOrStdout(), app.HTML())
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "Template source given inline")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON or YAML file with template bindings")

	return cmd
}

// templateComponent returns a root component whose setup state holds data.
// Every binding is a ref, so writes through the devtools server re-render.
func templateComponent(tpl string, data map[string]any) *minivue.Component {
	return &minivue.Component{
		Name:     "Template",
		Template: tpl,
		Setup: func(_ *reactivity.Object, ctx *minivue.SetupContext) any {
			state := make(map[string]any, len(data))
			for k, v := range data {
				state[k] = ctx.Ref(v)
			}
			return state
		},
	}
}
