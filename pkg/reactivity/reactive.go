package reactivity

import (
	"slices"
	"unsafe"
)

// Magic keys answered by every Object without tracking.
const (
	FlagIsReactive = "__v_isReactive"
	FlagIsReadonly = "__v_isReadonly"
)

// IterateKey is the dependency key for a reactive object's key set. Keys
// tracks it; adding or deleting a key triggers it.
const IterateKey = "__v_iterate"

// Flavor selects how an Object intercepts reads and writes.
type Flavor uint8

const (
	// FlavorReactive tracks reads and triggers on writes.
	FlavorReactive Flavor = iota
	// FlavorReadonly never tracks and rejects writes; nested maps are
	// returned readonly.
	FlavorReadonly
	// FlavorShallowReadonly is readonly at the top level only.
	FlavorShallowReadonly
)

func (f Flavor) String() string {
	switch f {
	case FlavorReactive:
		return "reactive"
	case FlavorReadonly:
		return "readonly"
	case FlavorShallowReadonly:
		return "shallowReadonly"
	default:
		return "unknown"
	}
}

// Object is an explicit get/set wrapper over a map[string]any.
type Object struct {
	sys    *System
	raw    map[string]any
	flavor Flavor
}

// Reactive wraps target so reads track and writes trigger.
// It returns nil and logs a diagnostic when target is not a map.
func (s *System) Reactive(target any) *Object {
	return s.wrap(target, FlavorReactive)
}

// Readonly wraps target so reads never track and writes are ignored.
func (s *System) Readonly(target any) *Object {
	return s.wrap(target, FlavorReadonly)
}

// ShallowReadonly is Readonly without wrapping nested maps.
func (s *System) ShallowReadonly(target any) *Object {
	return s.wrap(target, FlavorShallowReadonly)
}

func (s *System) wrap(target any, flavor Flavor) *Object {
	var raw map[string]any
	switch t := target.(type) {
	case map[string]any:
		raw = t
	case *Object:
		if t == nil {
			break
		}
		if t.flavor == flavor {
			return t
		}
		raw = t.raw
	}
	if raw == nil {
		s.warn("R002", "target", target, "flavor", flavor.String())
		return nil
	}

	cache := s.cacheFor(flavor)
	id := identity(raw)
	if existing, ok := cache[id]; ok {
		return existing
	}
	o := &Object{sys: s, raw: raw, flavor: flavor}
	cache[id] = o
	return o
}

func (s *System) cacheFor(flavor Flavor) map[unsafe.Pointer]*Object {
	switch flavor {
	case FlavorReadonly:
		return s.readonlyCache
	case FlavorShallowReadonly:
		return s.shallowReadonlyCache
	default:
		return s.reactiveCache
	}
}

// Flavor returns the wrapper's interception mode.
func (o *Object) Flavor() Flavor {
	return o.flavor
}

// Raw returns the wrapped map.
func (o *Object) Raw() map[string]any {
	return o.raw
}

// Get reads key. Map values come back wrapped in the same flavor (raw for
// shallow readonly); on reactive objects, other values track the read.
func (o *Object) Get(key string) any {
	switch key {
	case FlagIsReactive:
		return o.flavor == FlavorReactive
	case FlagIsReadonly:
		return o.flavor != FlavorReactive
	}

	v := o.raw[key]

	if o.flavor == FlavorShallowReadonly {
		return v
	}
	if nested, ok := v.(map[string]any); ok && nested != nil {
		if o.flavor == FlavorReadonly {
			return o.sys.Readonly(nested)
		}
		return o.sys.Reactive(nested)
	}
	if o.flavor == FlavorReactive {
		o.sys.Track(o.raw, key)
	}
	return v
}

// Has reports whether key is present, tracking the read like Get.
func (o *Object) Has(key string) bool {
	_, ok := o.raw[key]
	if o.flavor == FlavorReactive {
		o.sys.Track(o.raw, key)
	}
	return ok
}

// Keys returns the keys in sorted order. On reactive objects the read
// subscribes to key additions and deletions.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.raw))
	for k := range o.raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if o.flavor == FlavorReactive {
		o.sys.Track(o.raw, IterateKey)
	}
	return keys
}

// Set assigns key and triggers its subscribers. On readonly objects it
// logs a diagnostic, leaves the map untouched, and still reports true.
func (o *Object) Set(key string, value any) bool {
	if o.flavor != FlavorReactive {
		o.sys.warn("R001", "key", key, "flavor", o.flavor.String())
		return true
	}
	if inner, ok := value.(*Object); ok && inner != nil {
		value = inner.raw
	}
	_, had := o.raw[key]
	o.raw[key] = value
	o.sys.Trigger(o.raw, key)
	if !had {
		o.sys.Trigger(o.raw, IterateKey)
	}
	return true
}

// Delete removes key and triggers its subscribers.
func (o *Object) Delete(key string) bool {
	if o.flavor != FlavorReactive {
		o.sys.warn("R001", "key", key, "flavor", o.flavor.String())
		return true
	}
	if _, ok := o.raw[key]; !ok {
		return false
	}
	delete(o.raw, key)
	o.sys.Trigger(o.raw, key)
	o.sys.Trigger(o.raw, IterateKey)
	return true
}

// IsReactive reports whether v is a reactive Object.
func IsReactive(v any) bool {
	o, ok := v.(*Object)
	return ok && o != nil && o.Get(FlagIsReactive) == true
}

// IsReadonly reports whether v is a readonly or shallow readonly Object.
func IsReadonly(v any) bool {
	o, ok := v.(*Object)
	return ok && o != nil && o.Get(FlagIsReadonly) == true
}

// IsProxy reports whether v is any kind of Object wrapper.
func IsProxy(v any) bool {
	return IsReactive(v) || IsReadonly(v)
}

// ToRaw returns the map behind an Object, or v unchanged.
func ToRaw(v any) any {
	if o, ok := v.(*Object); ok && o != nil {
		return o.raw
	}
	return v
}
