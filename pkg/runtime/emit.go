package runtime

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Emit calls the handler bound under "on" + the capitalized camel-cased
// event name in the instance's props. A missing handler is a no-op.
func (i *Instance) Emit(event string, args ...any) {
	handler := i.vnode.Props[toHandlerKey(camelize(event))]
	if handler == nil {
		return
	}
	callHandler(handler, args)
}

func callHandler(handler any, args []any) {
	switch h := handler.(type) {
	case func(...any):
		h(args...)
		return
	case func():
		h()
		return
	case func(any):
		var first any
		if len(args) > 0 {
			first = args[0]
		}
		h(first)
		return
	}

	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func {
		return
	}
	t := fn.Type()
	in := make([]reflect.Value, 0, len(args))
	for idx := 0; idx < t.NumIn(); idx++ {
		if t.IsVariadic() && idx == t.NumIn()-1 {
			elem := t.In(idx).Elem()
			for _, a := range args[min(idx, len(args)):] {
				in = append(in, argValue(a, elem))
			}
			break
		}
		var a any
		if idx < len(args) {
			a = args[idx]
		}
		in = append(in, argValue(a, t.In(idx)))
	}
	fn.Call(in)
}

func argValue(a any, t reflect.Type) reflect.Value {
	if a == nil {
		return reflect.Zero(t)
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v
	}
	if v.Type().ConvertibleTo(t) {
		return v.Convert(t)
	}
	return reflect.Zero(t)
}

// camelize turns kebab-case into camelCase.
func camelize(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func toHandlerKey(s string) string {
	if s == "" {
		return ""
	}
	return "on" + capitalize(s)
}
