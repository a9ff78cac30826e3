package runtime

import "github.com/vango-dev/minivue/pkg/reactivity"

// Slot renders projected content for an optional scope. It may return
// nil, a string, a VNode, or a []VNode.
type Slot func(scope Props) any

// Slots maps slot names to slot functions. "default" is the unnamed slot.
type Slots map[string]Slot

// SlotFunc is a normalized slot that always yields a vnode list.
type SlotFunc func(scope Props) []VNode

func normalizeObjectSlots(raw Slots) map[string]SlotFunc {
	out := make(map[string]SlotFunc, len(raw))
	for name, s := range raw {
		if s == nil {
			continue
		}
		s := s
		out[name] = func(scope Props) []VNode {
			return normalizeSlotValue(s(scope))
		}
	}
	return out
}

func normalizeSlotValue(v any) []VNode {
	switch c := v.(type) {
	case nil:
		return nil
	case string:
		return []VNode{CreateTextVNode(c)}
	case VNode:
		return []VNode{c}
	case []VNode:
		return c
	}
	return []VNode{CreateTextVNode(ToDisplayString(v))}
}

// RenderSlots renders the named slot into a fragment, or returns nil
// when the slot was not passed.
func RenderSlots(slots map[string]SlotFunc, name string, scope Props) VNode {
	s, ok := slots[name]
	if !ok || s == nil {
		return nil
	}
	return H(Fragment, nil, s(scope))
}

// RenderSlotsFrom reads $slots from ctx and renders the named slot.
func RenderSlotsFrom(ctx RenderContext, name string, scope Props) VNode {
	slots, _ := ctx.Get("$slots").(map[string]SlotFunc)
	return RenderSlots(slots, name, scope)
}

// Unref is reactivity.Unref, re-exported for compiled templates.
func Unref(v any) any { return reactivity.Unref(v) }
