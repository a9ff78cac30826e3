package runtime

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", nil, []int{}},
		{"all new", []int{-1, -1}, []int{}},
		{"sorted", []int{0, 1, 2}, []int{0, 1, 2}},
		{"rotate", []int{2, 0, 1}, []int{1, 2}},
		{"with holes", []int{3, 1, -1, 0}, []int{3}},
		{"classic", []int{4, 2, 3, 1, 5}, []int{1, 2, 4}},
		{"strict", []int{1, 1, 1}, []int{0}},
		{"holes between", []int{0, -1, 2, -1, 1, 3}, []int{0, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := longestIncreasingSubsequence(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlerKey(t *testing.T) {
	tests := []struct {
		event, want string
	}{
		{"add", "onAdd"},
		{"add-foo", "onAddFoo"},
		{"update-model-value", "onUpdateModelValue"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := toHandlerKey(camelize(tt.event)); got != tt.want {
			t.Errorf("toHandlerKey(%q) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	m := map[string]any{}
	fn := func() {}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil", nil, nil, true},
		{"ints", 1, 1, true},
		{"int vs float", 1, 1.0, false},
		{"strings", "a", "b", false},
		{"same map", m, m, true},
		{"other map", m, map[string]any{}, false},
		{"funcs", fn, fn, false},
	}
	for _, tt := range tests {
		if got := valueEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestToDisplayString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{map[string]any{"a": 1}, `{"a":1}`},
		{[]int{1, 2}, "[1,2]"},
	}
	for _, tt := range tests {
		if got := ToDisplayString(tt.in); got != tt.want {
			t.Errorf("ToDisplayString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHShapes(t *testing.T) {
	comp := &Component{Name: "C"}
	tests := []struct {
		name string
		node VNode
		want ShapeFlags
	}{
		{"element text", H("p", nil, "a"), ShapeElement | ShapeTextChildren},
		{"element array", H("p", nil, []VNode{H("b", nil, nil)}), ShapeElement | ShapeArrayChildren},
		{"element single child", H("p", nil, H("b", nil, nil)), ShapeElement | ShapeArrayChildren},
		{"element empty", H("p", nil, nil), ShapeElement},
		{"component", H(comp, nil, nil), ShapeStatefulComponent},
		{"component slots", H(comp, nil, Slots{}), ShapeStatefulComponent | ShapeSlotChildren},
		{"component default slot", H(comp, nil, func(Props) any { return nil }), ShapeStatefulComponent | ShapeSlotChildren},
	}
	for _, tt := range tests {
		if got := tt.node.Shape(); got != tt.want {
			t.Errorf("%s: got %05b, want %05b", tt.name, got, tt.want)
		}
	}
	if k := H("li", Props{"key": 7}, nil).Key(); k != 7 {
		t.Errorf("got key %v, want 7", k)
	}
}

func TestHPanicsOnBadInput(t *testing.T) {
	tests := []struct {
		name     string
		typ      any
		children any
		want     error
	}{
		{"bad type", 42, nil, ErrUnsupportedVNode},
		{"bad children", "p", 3.5, ErrUnsupportedChildren},
		{"bad text", Text, []VNode{}, ErrUnsupportedChildren},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, tt.want) {
					t.Errorf("got %v, want %v", err, tt.want)
				}
			}()
			H(tt.typ, nil, tt.children)
		})
	}
}
