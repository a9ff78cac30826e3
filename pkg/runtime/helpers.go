package runtime

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/vango-dev/minivue/pkg/reactivity"
)

// ToDisplayString renders an interpolated value: nil is empty, maps and
// reactive objects are JSON, refs are unwrapped, anything else uses fmt.
func ToDisplayString(v any) string {
	v = reactivity.Unref(v)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *reactivity.Object:
		return jsonString(displayValue(x, nil))
	case map[string]any:
		return jsonString(x)
	case fmt.Stringer:
		return x.String()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return jsonString(v)
	}
	return fmt.Sprint(v)
}

// displayValue copies o through its accessors so a render that displays
// the object subscribes to every field and to its key set.
func displayValue(o *reactivity.Object, path map[*reactivity.Object]bool) map[string]any {
	if path[o] {
		return nil
	}
	if path == nil {
		path = make(map[*reactivity.Object]bool)
	}
	path[o] = true
	defer delete(path, o)

	keys := o.Keys()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v := o.Get(k)
		if nested, ok := v.(*reactivity.Object); ok {
			// Get does not track a slot holding a nested object.
			o.Has(k)
			v = displayValue(nested, path)
		}
		out[k] = v
	}
	return out
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
