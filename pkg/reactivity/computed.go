package reactivity

// Computed is a lazily evaluated, memoized derived value.
type Computed struct {
	sys    *System
	dep    *Dep
	effect *ReactiveEffect

	// dirty is set by upstream triggers and cleared by the next read.
	dirty bool
	value any
}

// Computed creates a computed value from getter. The getter does not run
// until the first Value call.
func (s *System) Computed(getter func() any) *Computed {
	c := &Computed{sys: s, dep: NewDep(), dirty: true}
	c.effect = s.NewEffect(getter, func() {
		if c.dirty {
			return
		}
		c.dirty = true
		s.TriggerEffects(c.dep)
	})
	return c
}

// Value returns the cached value, recomputing it first if a dependency
// changed since the last read.
func (c *Computed) Value() any {
	c.sys.TrackEffects(c.dep)
	if c.dirty {
		c.value = c.effect.Run()
		c.dirty = false
	}
	return c.value
}

// Dirty reports whether the next read will recompute.
func (c *Computed) Dirty() bool {
	return c.dirty
}

// Stop detaches the computed from its dependencies. The last value stays
// readable.
func (c *Computed) Stop() {
	c.effect.Stop()
}

func (c *Computed) isRef() {}
