package reactivity

// Ref is a reactive holder for a single value.
type Ref struct {
	sys *System
	dep *Dep

	// raw is the value as set; value is what readers get (maps wrapped
	// reactive).
	raw   any
	value any
}

// Ref creates a ref holding v.
func (s *System) Ref(v any) *Ref {
	return &Ref{
		sys:   s,
		dep:   NewDep(),
		raw:   v,
		value: s.convert(v),
	}
}

// Value returns the current value, tracking the read.
func (r *Ref) Value() any {
	r.sys.TrackEffects(r.dep)
	return r.value
}

// Peek returns the current value without tracking.
func (r *Ref) Peek() any {
	return r.value
}

// SetValue replaces the value. Setting an identical value does nothing.
func (r *Ref) SetValue(v any) {
	if inner, ok := v.(*Object); ok && inner != nil {
		v = inner.raw
	}
	if !hasChanged(r.raw, v) {
		return
	}
	r.raw = v
	r.value = r.sys.convert(v)
	r.sys.TriggerEffects(r.dep)
}

// Dep exposes the ref's subscriber set.
func (r *Ref) Dep() *Dep {
	return r.dep
}

func (r *Ref) isRef() {}

func (s *System) convert(v any) any {
	if m, ok := v.(map[string]any); ok && m != nil {
		return s.Reactive(m)
	}
	return v
}

// refLike is implemented by Ref and Computed.
type refLike interface {
	Value() any
	isRef()
}

// IsRef reports whether v is a *Ref or *Computed.
func IsRef(v any) bool {
	r, ok := v.(refLike)
	if !ok {
		return false
	}
	switch t := r.(type) {
	case *Ref:
		return t != nil
	case *Computed:
		return t != nil
	}
	return true
}

// Unref returns the value of a ref, or v itself.
func Unref(v any) any {
	if IsRef(v) {
		return v.(refLike).Value()
	}
	return v
}

// RefProxy reads through to a map, unwrapping refs in its slots.
type RefProxy struct {
	sys *System
	raw map[string]any
}

// ProxyRefs wraps target so Get unwraps refs and Set writes into them.
func (s *System) ProxyRefs(target map[string]any) *RefProxy {
	if target == nil {
		target = make(map[string]any)
	}
	return &RefProxy{sys: s, raw: target}
}

// Get returns the slot value, unwrapping a ref.
func (p *RefProxy) Get(key string) any {
	return Unref(p.raw[key])
}

// Lookup is Get with a presence flag.
func (p *RefProxy) Lookup(key string) (any, bool) {
	v, ok := p.raw[key]
	if !ok {
		return nil, false
	}
	return Unref(v), true
}

// Set writes into the ref held by the slot, unless value is itself a ref,
// in which case the slot is replaced.
func (p *RefProxy) Set(key string, value any) bool {
	switch old := p.raw[key].(type) {
	case *Ref:
		if old != nil && !IsRef(value) {
			old.SetValue(value)
			return true
		}
	case *Computed:
		if old != nil && !IsRef(value) {
			p.sys.warn("R003", "key", key)
			return false
		}
	}
	p.raw[key] = value
	return true
}

// Raw returns the underlying map.
func (p *RefProxy) Raw() map[string]any {
	return p.raw
}
