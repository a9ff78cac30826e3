package reactivity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/minivue/pkg/reactivity"
)

// reading inside an effect subscribes it; writing re-runs it
func TestEffectTracksAndReruns(t *testing.T) {
	sys := reactivity.NewSystem()
	user := sys.Reactive(map[string]any{"age": 10})

	var nextAge int
	sys.Effect(func() {
		nextAge = user.Get("age").(int) + 1
	})
	assert.Equal(t, 11, nextAge)

	user.Set("age", user.Get("age").(int)+1)
	assert.Equal(t, 12, nextAge)
}

// subscribers re-run once per trigger, in subscription order
func TestEffectTriggerOrder(t *testing.T) {
	sys := reactivity.NewSystem()
	state := sys.Reactive(map[string]any{"n": 0})

	var calls []string
	for _, name := range []string{"a", "b", "c"} {
		sys.Effect(func() {
			state.Get("n")
			calls = append(calls, name)
		})
	}
	calls = nil

	state.Set("n", 1)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

// reading the same key twice keeps a single subscription
func TestEffectTrackIsIdempotent(t *testing.T) {
	sys := reactivity.NewSystem()
	raw := map[string]any{"k": 1}
	state := sys.Reactive(raw)

	runner := sys.Effect(func() {
		state.Get("k")
		state.Get("k")
	})

	dep := sys.DepFor(raw, "k")
	require.NotNil(t, dep)
	assert.Equal(t, 1, dep.Len())
	assert.Equal(t, 1, runner.Effect().DepCount())

	runner.Run()
	assert.Equal(t, 1, dep.Len())
}

func TestEffectReturnsRunner(t *testing.T) {
	sys := reactivity.NewSystem()
	foo := sys.Ref(10)

	runner := sys.Effect(func() { foo.SetValue(foo.Peek().(int) + 1) })
	assert.Equal(t, 11, foo.Peek())

	runner.Run()
	assert.Equal(t, 12, foo.Peek())
}

func TestEffectScheduler(t *testing.T) {
	sys := reactivity.NewSystem()
	obj := sys.Reactive(map[string]any{"foo": 1})

	var dummy any
	scheduled := 0
	runner := sys.Effect(func() {
		dummy = obj.Get("foo")
	}, reactivity.WithScheduler(func() {
		scheduled++
	}))

	assert.Equal(t, 0, scheduled)
	assert.Equal(t, 1, dummy)

	obj.Set("foo", 2)
	assert.Equal(t, 1, scheduled)
	assert.Equal(t, 1, dummy, "scheduler replaces the re-run")

	runner.Run()
	assert.Equal(t, 2, dummy)
}

func TestEffectStop(t *testing.T) {
	sys := reactivity.NewSystem()
	obj := sys.Reactive(map[string]any{"prop": 1})

	var dummy any
	runner := sys.Effect(func() { dummy = obj.Get("prop") })

	obj.Set("prop", 2)
	assert.Equal(t, 2, dummy)

	reactivity.Stop(runner)
	obj.Set("prop", 3)
	assert.Equal(t, 2, dummy, "stopped effect must not re-run")
	assert.False(t, runner.Effect().Active())
	assert.Equal(t, 0, runner.Effect().DepCount())

	runner.Run()
	assert.Equal(t, 3, dummy, "stopped runner still executes when called")

	obj.Set("prop", 4)
	assert.Equal(t, 3, dummy, "manual run of a stopped effect does not subscribe")
}

func TestEffectOnStopCalledOnce(t *testing.T) {
	sys := reactivity.NewSystem()
	stops := 0
	runner := sys.Effect(func() {}, reactivity.WithOnStop(func() { stops++ }))

	reactivity.Stop(runner)
	reactivity.Stop(runner)
	assert.Equal(t, 1, stops)
}

func TestEffectLazy(t *testing.T) {
	sys := reactivity.NewSystem()
	runs := 0
	runner := sys.Effect(func() { runs++ }, reactivity.WithLazy())
	assert.Equal(t, 0, runs)

	runner.Run()
	assert.Equal(t, 1, runs)
}

// dependencies from a branch no longer taken are dropped
func TestEffectDynamicDependencies(t *testing.T) {
	sys := reactivity.NewSystem()
	state := sys.Reactive(map[string]any{"ok": true, "text": "hello"})

	runs := 0
	sys.Effect(func() {
		runs++
		if state.Get("ok").(bool) {
			state.Get("text")
		}
	})
	assert.Equal(t, 1, runs)

	state.Set("ok", false)
	assert.Equal(t, 2, runs)

	state.Set("text", "ignored")
	assert.Equal(t, 2, runs, "text is no longer a dependency")
}

func TestNestedEffectsRestoreTracking(t *testing.T) {
	sys := reactivity.NewSystem()
	state := sys.Reactive(map[string]any{"outer": 0, "inner": 0})

	outerRuns, innerRuns := 0, 0
	sys.Effect(func() {
		outerRuns++
		sys.Effect(func() {
			innerRuns++
			state.Get("inner")
		})
		state.Get("outer")
	})
	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 1, innerRuns)

	state.Set("outer", 1)
	assert.Equal(t, 2, outerRuns, "reads after a nested effect are still tracked")
	assert.False(t, sys.IsTracking())
}

func TestEffectPanicRestoresTracking(t *testing.T) {
	sys := reactivity.NewSystem()
	state := sys.Reactive(map[string]any{"n": 0})

	assert.Panics(t, func() {
		sys.Effect(func() {
			state.Get("n")
			panic("render failed")
		})
	})
	assert.False(t, sys.IsTracking())
	assert.Nil(t, sys.ActiveEffect())
}

func TestEffectWritingOwnDependencyDoesNotRecurse(t *testing.T) {
	sys := reactivity.NewSystem()
	state := sys.Reactive(map[string]any{"n": 0})

	runs := 0
	sys.Effect(func() {
		runs++
		state.Set("n", state.Get("n").(int)+1)
	})
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, state.Get("n"))
}

func TestTriggerUntrackedIsNoop(t *testing.T) {
	sys := reactivity.NewSystem()
	raw := map[string]any{"x": 1}

	assert.NotPanics(t, func() {
		sys.Trigger(raw, "x")
		sys.Trigger(nil, "x")
	})
	assert.Nil(t, sys.DepFor(raw, "x"))
}

func TestPauseTracking(t *testing.T) {
	sys := reactivity.NewSystem()
	state := sys.Reactive(map[string]any{"a": 1, "b": 1})

	runs := 0
	sys.Effect(func() {
		runs++
		state.Get("a")
		resume := sys.PauseTracking()
		state.Get("b")
		resume()
	})

	state.Set("b", 2)
	assert.Equal(t, 1, runs)
	state.Set("a", 2)
	assert.Equal(t, 2, runs)
}
