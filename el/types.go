package el

import "github.com/vango-dev/minivue/pkg/runtime"

// VNode is runtime.VNode.
type VNode = runtime.VNode

// Props is runtime.Props.
type Props = runtime.Props

// Attr is a single prop. Event handlers are Attrs keyed onXxx.
type Attr struct {
	Key   string
	Value any
}
