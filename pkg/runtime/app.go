package runtime

import (
	"fmt"

	"github.com/vango-dev/minivue/internal/errors"
)

// App is a root component bound to a renderer.
type App struct {
	renderer  *Renderer
	root      *Component
	rootProps Props
	provides  map[any]any

	vnode     *ComponentNode
	container HostNode
}

// CreateApp prepares root for mounting. Nothing is rendered until Mount.
func (r *Renderer) CreateApp(root *Component, props Props) *App {
	return &App{
		renderer:  r,
		root:      root,
		rootProps: props,
		provides:  make(map[any]any),
	}
}

// Provide makes value injectable by every component in the app.
func (a *App) Provide(key, value any) *App {
	a.provides[key] = value
	return a
}

// Renderer returns the renderer the app mounts with.
func (a *App) Renderer() *Renderer { return a.renderer }

// Root returns the mounted root instance, or nil.
func (a *App) Root() *Instance {
	if a.vnode == nil {
		return nil
	}
	return a.vnode.instance
}

// Container returns the host node the app is mounted into, or nil.
func (a *App) Container() HostNode { return a.container }

// Mount renders the root component into container and drains pending
// microtasks. Template compilation errors are returned; any other failure
// during patching panics.
func (a *App) Mount(container HostNode) error {
	if a.vnode != nil {
		return fmt.Errorf("app already mounted")
	}
	if a.root == nil {
		return errors.New("V001").WithDetail("nil root component")
	}
	if a.root.Render == nil && a.root.Setup == nil {
		if err := a.precompile(); err != nil {
			return err
		}
	}

	vnode := H(a.root, a.rootProps, nil).(*ComponentNode)
	vnode.app = a
	a.renderer.sched.Turn(func() {
		a.renderer.Render(vnode, container)
	})
	a.vnode = vnode
	a.container = container
	return nil
}

func (a *App) precompile() error {
	r := a.renderer
	if _, ok := r.compiled[a.root]; ok {
		return nil
	}
	if a.root.Template == "" {
		return errors.New("V004").WithDetailf("component %s", a.root.displayName())
	}
	if r.compile == nil {
		return errors.New("V003")
	}
	fn, err := r.compile(a.root.Template)
	if err != nil {
		return errors.New("V005").WithDetailf("component %s", a.root.displayName()).Wrap(err)
	}
	r.compiled[a.root] = fn
	return nil
}

// Unmount tears the app down and stops every component effect.
func (a *App) Unmount() {
	if a.vnode == nil {
		return
	}
	a.renderer.sched.Turn(func() {
		a.renderer.Render(nil, a.container)
	})
	a.vnode = nil
	a.container = nil
}
