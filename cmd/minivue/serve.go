package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue"
	"github.com/vango-dev/minivue/pkg/devtools"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		expr     string
		dataPath string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve [file|-]",
		Short: "Mount a template behind the devtools server",
		Long: `Mount a template with bindings and serve the devtools API.

Open the websocket route to watch host operations while posting new
state to the state route:

  curl localhost:7070/_minivue/tree
  curl -d '{"count": 3}' localhost:7070/_minivue/state

Examples:
  minivue serve counter.html --data state.yaml
  minivue serve -e "<p>{{count}}</p>" --addr :9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Devtools.Addr = addr
			}
			tpl, err := readTemplate(cmd.InOrStdin(), args, expr)
			if err != nil {
				return err
			}
			data, err := readBindings(dataPath)
			if err != nil {
				return err
			}

			app := minivue.CreateApp(templateComponent(tpl, data), nil,
				minivue.WithConfig(minivue.FromFile(cfg, logger, nil)))
			if err := app.Mount(nil); err != nil {
				return err
			}

			loop := app.NewLoop(0)
			tools := devtools.New(app, loop,
				devtools.WithPath(cfg.Devtools.Path),
				devtools.WithAllowedOrigins(cfg.Devtools.AllowedOrigins...),
				devtools.WithLogger(logger),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loopErr := make(chan error, 1)
			go func() { loopErr <- loop.Run(ctx) }()

			printBanner()
			success("Serving %s", app.Runtime().Root().Name())
			info("Tree:    http://%s%s/tree", cfg.Devtools.Addr, cfg.Devtools.Path)
			info("Ops:     ws://%s%s/ws", cfg.Devtools.Addr, cfg.Devtools.Path)
			info("State:   POST http://%s%s/state", cfg.Devtools.Addr, cfg.Devtools.Path)
			if !cfg.Metrics.Enabled {
				warn("Metrics are disabled; %s/metrics serves only Go runtime metrics", cfg.Devtools.Path)
			}

			if err := tools.ListenAndServe(ctx, cfg.Devtools.Addr); err != nil {
				return err
			}
			if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			info("Shut down")
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "Template source given inline")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON or YAML file with template bindings")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
