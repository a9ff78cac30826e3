package reactivity

import mapset "github.com/deckarep/golang-set/v2"

// Dep is the set of effects subscribed to one reactive slot.
// Membership is a set; order is kept separately so triggers replay in
// subscription order.
type Dep struct {
	members mapset.Set[*ReactiveEffect]
	order   []*ReactiveEffect
}

// NewDep creates an empty dep.
func NewDep() *Dep {
	return &Dep{
		members: mapset.NewThreadUnsafeSet[*ReactiveEffect](),
	}
}

// Len returns the number of subscribed effects.
func (d *Dep) Len() int {
	return d.members.Cardinality()
}

// Has reports whether e is subscribed.
func (d *Dep) Has(e *ReactiveEffect) bool {
	return d.members.Contains(e)
}

func (d *Dep) add(e *ReactiveEffect) bool {
	if !d.members.Add(e) {
		return false
	}
	d.order = append(d.order, e)
	return true
}

func (d *Dep) remove(e *ReactiveEffect) {
	if !d.members.Contains(e) {
		return
	}
	d.members.Remove(e)
	for i, other := range d.order {
		if other == e {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the subscribers so effects can re-subscribe or stop
// while the trigger loop is iterating.
func (d *Dep) snapshot() []*ReactiveEffect {
	if len(d.order) == 0 {
		return nil
	}
	return append([]*ReactiveEffect(nil), d.order...)
}
