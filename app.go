package minivue

import (
	"log/slog"

	"github.com/vango-dev/minivue/pkg/compiler"
	"github.com/vango-dev/minivue/pkg/memdom"
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/scheduler"
)

// =============================================================================
// App Type
// =============================================================================

// App is a root component wired to its own reactive system, scheduler,
// template cache, and in-memory DOM.
//
// Create an App with minivue.CreateApp():
//
//	app := minivue.CreateApp(Root, minivue.Props{"title": "hi"},
//	    minivue.WithLogger(logger),
//	)
//	app.Provide("theme", "dark")
//	if err := app.Mount(nil); err != nil {
//	    return err
//	}
type App struct {
	app      *runtime.App
	renderer *runtime.Renderer
	host     *memdom.Host
	sys      *reactivity.System
	sched    *scheduler.Scheduler
	cache    *compiler.Cache

	container *memdom.Node
	config    Config
	logger    *slog.Logger
}

// CreateApp builds an App for root. Nothing renders until Mount.
func CreateApp(root *Component, props Props, opts ...Option) *App {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	host := memdom.New()
	sys := reactivity.NewSystem(reactivity.WithLogger(logger))
	sched := scheduler.New(
		scheduler.WithLogger(logger),
		scheduler.WithMetrics(cfg.Metrics),
		scheduler.WithTracer(cfg.Tracer),
	)

	a := &App{
		host:   host,
		sys:    sys,
		sched:  sched,
		config: cfg,
		logger: logger,
	}

	compile := cfg.Compiler
	if compile == nil {
		a.cache = compiler.NewCache(
			compiler.WithLogger(logger),
			compiler.WithMetrics(cfg.Metrics),
			compiler.WithTracer(cfg.Tracer),
		)
		compile = a.cache.Compile
	}

	if cfg.Debug {
		host.Observe(func(op memdom.Op) {
			logger.Debug("host op", "kind", op.Kind, "node", op.Node, "parent", op.Parent, "key", op.Key)
		})
	}

	a.renderer = runtime.NewRenderer(host,
		runtime.WithSystem(sys),
		runtime.WithScheduler(sched),
		runtime.WithCompiler(compile),
		runtime.WithLogger(logger),
		runtime.WithMetrics(cfg.Metrics),
		runtime.WithTracer(cfg.Tracer),
	)
	a.app = a.renderer.CreateApp(root, props)
	return a
}

// Provide makes value injectable by every component in the app.
func (a *App) Provide(key, value any) *App {
	a.app.Provide(key, value)
	return a
}

// Mount renders the root component into container. A nil container mounts
// into a fresh <div id="app">.
func (a *App) Mount(container *memdom.Node) error {
	if container == nil {
		container = a.host.NewContainer("div")
		a.host.PatchProp(container, "id", nil, "app")
		a.host.ResetOps()
	}
	if err := a.app.Mount(container); err != nil {
		return err
	}
	a.container = container
	a.logger.Debug("app mounted", "root", a.app.Root().Name())
	return nil
}

// Unmount tears down the tree and stops every component effect.
func (a *App) Unmount() {
	a.app.Unmount()
	a.container = nil
}

// Flush runs pending microtasks, including any scheduled re-render.
func (a *App) Flush() {
	a.sched.Drain()
}

// NewLoop returns a loop that serializes work from other goroutines onto
// this app's scheduler.
func (a *App) NewLoop(queueSize int) *scheduler.Loop {
	return scheduler.NewLoop(a.sched, queueSize)
}

// HTML returns the inner HTML of the mounted container.
func (a *App) HTML() string {
	if a.container == nil {
		return ""
	}
	return a.container.InnerHTML()
}

// State returns the root component's setup bindings, or nil before Mount
// or when setup returned a render function.
func (a *App) State() *reactivity.RefProxy {
	root := a.app.Root()
	if root == nil {
		return nil
	}
	return root.SetupState()
}

// =============================================================================
// Accessors
// =============================================================================

// Container returns the mounted container, or nil.
func (a *App) Container() *memdom.Node { return a.container }

// Host returns the in-memory DOM.
func (a *App) Host() *memdom.Host { return a.host }

// Renderer returns the renderer.
func (a *App) Renderer() *runtime.Renderer { return a.renderer }

// Runtime returns the underlying runtime app.
func (a *App) Runtime() *runtime.App { return a.app }

// System returns the reactive system.
func (a *App) System() *reactivity.System { return a.sys }

// Scheduler returns the job scheduler.
func (a *App) Scheduler() *scheduler.Scheduler { return a.sched }

// Templates returns the template cache, or nil when a custom compiler is set.
func (a *App) Templates() *compiler.Cache { return a.cache }

// Config returns the app configuration.
func (a *App) Config() Config { return a.config }

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger { return a.logger }
