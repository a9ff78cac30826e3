// Package reactivity provides the dependency-tracking core for minivue.
//
// All state lives on a *System: the dependency map from raw targets to
// subscribed effects, the effect currently running, and whether reads are
// being tracked. There is no package-level current effect; every wrapper
// created by a System reports to that System.
//
// # Core Types
//
// Object wraps a map[string]any. Reads register the running effect, writes
// re-run the effects that read the key:
//
//	sys := reactivity.NewSystem()
//	user := sys.Reactive(map[string]any{"age": 10})
//
//	var nextAge int
//	sys.Effect(func() {
//	    nextAge = user.Get("age").(int) + 1
//	})
//	user.Set("age", 11) // nextAge is now 12
//
// Ref holds a single value, Computed a lazily recomputed derived value:
//
//	count := sys.Ref(1)
//	double := sys.Computed(func() any { return count.Value().(int) * 2 })
//	double.Value() // 2, recomputed only after count changes
//
// Readonly and ShallowReadonly produce wrappers that never track and ignore
// writes with a logged diagnostic.
//
// # Scheduling
//
// An effect created WithScheduler does not re-run itself on trigger; the
// scheduler is called instead. The renderer uses this to queue component
// updates onto a job queue.
//
// # Threading
//
// A System is single-threaded. All reads, writes, and effect runs for one
// System must happen on one goroutine (see scheduler.Loop).
package reactivity
