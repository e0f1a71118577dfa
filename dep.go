package reactivity

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Dep is the subscriber set for one observable slot: one per (target, key)
// pair in the registry, one inline per ref and per computed.
//
// was and now are per-recursion-level bitmasks. Bit i of was means "this dep
// was subscribed before the level-i effect run began"; bit i of now means
// "this dep was re-tracked during the level-i run". Both are zero whenever
// no effect is running.
type Dep struct {
	subs mapset.Set[*ReactiveEffect]
	was  uint32
	now  uint32
}

func newDep() *Dep {
	return &Dep{subs: mapset.NewThreadUnsafeSet[*ReactiveEffect]()}
}

func (d *Dep) wasTracked() bool {
	return d.was&trackOpBit != 0
}

func (d *Dep) newTracked() bool {
	return d.now&trackOpBit != 0
}

// initDepMarkers marks every dep the effect subscribed to on its previous
// run, so trackEffects can tell re-tracked deps from genuinely new ones.
func initDepMarkers(e *ReactiveEffect) {
	for _, dep := range e.deps {
		dep.was |= trackOpBit
	}
}

// finalizeDepMarkers drops subscriptions that were present last run but not
// re-tracked this run, compacting e.deps in place with a write pointer.
func finalizeDepMarkers(e *ReactiveEffect) {
	ptr := 0
	for _, dep := range e.deps {
		if dep.wasTracked() && !dep.newTracked() {
			dep.subs.Remove(e)
		} else {
			e.deps[ptr] = dep
			ptr++
		}
		dep.was &^= trackOpBit
		dep.now &^= trackOpBit
	}
	for i := ptr; i < len(e.deps); i++ {
		e.deps[i] = nil
	}
	e.deps = e.deps[:ptr]
}
