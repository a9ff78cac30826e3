package runtime

import (
	"maps"
	"reflect"
	"slices"
)

// valueEqual compares prop values: maps and pointers by identity, scalars
// with ==. Non-nil funcs are never equal, since Go cannot tell two closures
// over different state apart.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() {
		return a == b
	}
	return false
}

// hasPropsChanged reports whether any key was added, removed, or changed.
func hasPropsChanged(prev, next Props) bool {
	if len(prev) != len(next) {
		return true
	}
	for k, v := range next {
		old, ok := prev[k]
		if !ok || !valueEqual(old, v) {
			return true
		}
	}
	return false
}

func sortedKeys(p Props) []string {
	return slices.Sorted(maps.Keys(p))
}
