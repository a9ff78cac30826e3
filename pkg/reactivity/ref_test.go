package reactivity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vango-dev/minivue/pkg/reactivity"
)

func TestRef(t *testing.T) {
	sys := reactivity.NewSystem()
	a := sys.Ref(1)
	assert.Equal(t, 1, a.Value())

	a.SetValue(2)
	assert.Equal(t, 2, a.Value())
}

func TestRefIsReactive(t *testing.T) {
	sys := reactivity.NewSystem()
	a := sys.Ref(1)

	calls := 0
	var dummy any
	sys.Effect(func() {
		calls++
		dummy = a.Value()
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, dummy)

	a.SetValue(2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, dummy)

	// same value must not trigger
	a.SetValue(2)
	assert.Equal(t, 2, calls)
}

func TestRefSameValueTriggersOnce(t *testing.T) {
	sys := reactivity.NewSystem()
	r := sys.Ref("a")

	calls := 0
	sys.Effect(func() {
		r.Value()
		calls++
	})
	calls = 0

	r.SetValue("x")
	r.SetValue("x")
	assert.Equal(t, 1, calls)
}

func TestRefNaNIsUnchanged(t *testing.T) {
	sys := reactivity.NewSystem()
	r := sys.Ref(math.NaN())

	calls := 0
	sys.Effect(func() {
		r.Value()
		calls++
	})
	r.SetValue(math.NaN())
	assert.Equal(t, 1, calls)
}

func TestRefNestedObject(t *testing.T) {
	sys := reactivity.NewSystem()
	raw := map[string]any{"count": 1}
	a := sys.Ref(raw)

	var dummy any
	sys.Effect(func() {
		dummy = a.Value().(*reactivity.Object).Get("count")
	})
	assert.Equal(t, 1, dummy)

	a.Value().(*reactivity.Object).Set("count", 2)
	assert.Equal(t, 2, dummy)

	// assigning the reactive wrapper of the same raw map is not a change
	calls := 0
	sys.Effect(func() {
		a.Value()
		calls++
	})
	a.SetValue(sys.Reactive(raw))
	assert.Equal(t, 1, calls)

	a.SetValue(map[string]any{"count": 5})
	assert.Equal(t, 2, calls)
	assert.Equal(t, 5, dummy)
}

func TestIsRefAndUnref(t *testing.T) {
	sys := reactivity.NewSystem()
	a := sys.Ref(1)
	c := sys.Computed(func() any { return 2 })

	assert.True(t, reactivity.IsRef(a))
	assert.True(t, reactivity.IsRef(c))
	assert.False(t, reactivity.IsRef(1))
	assert.False(t, reactivity.IsRef((*reactivity.Ref)(nil)))

	assert.Equal(t, 1, reactivity.Unref(a))
	assert.Equal(t, 2, reactivity.Unref(c))
	assert.Equal(t, 3, reactivity.Unref(3))
}

func TestProxyRefs(t *testing.T) {
	sys := reactivity.NewSystem()
	age := sys.Ref(10)
	user := map[string]any{"age": age, "name": "xiaohong"}

	proxy := sys.ProxyRefs(user)
	assert.Equal(t, 10, proxy.Get("age"))
	assert.Equal(t, "xiaohong", proxy.Get("name"))

	proxy.Set("age", 20)
	assert.Equal(t, 20, proxy.Get("age"))
	assert.Equal(t, 20, age.Value(), "writing a plain value updates the held ref")
	assert.Same(t, age, user["age"])

	next := sys.Ref(10)
	proxy.Set("age", next)
	assert.Equal(t, 10, proxy.Get("age"))
	assert.Same(t, next, user["age"], "writing a ref replaces the slot")
	assert.Equal(t, 20, age.Value())

	_, ok := proxy.Lookup("missing")
	assert.False(t, ok)
}

func TestProxyRefsComputedIsReadonly(t *testing.T) {
	sys, logs := newLoggedSystem()
	c := sys.Computed(func() any { return 1 })
	proxy := sys.ProxyRefs(map[string]any{"c": c})

	assert.False(t, proxy.Set("c", 5))
	assert.Equal(t, 1, proxy.Get("c"))
	assert.Contains(t, logs.String(), "code=R003")
}
