package reactivity

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// targetMap is the global registry: target identity → key → Dep. Entries
// are held strongly; Dispose releases a target that is no longer observed.
var targetMap = map[uintptr]map[any]*Dep{}

// track records a subscription of the active effect to the dep for
// (target, key), creating registry entries on first sight. No-op when
// tracking is paused or no effect is running.
func track(target any, op TrackOpType, key any) {
	if !shouldTrack || activeEffect == nil {
		return
	}
	id := identityOf(target)
	if id == 0 {
		return
	}
	depsMap := targetMap[id]
	if depsMap == nil {
		depsMap = make(map[any]*Dep)
		targetMap[id] = depsMap
	}
	dep := depsMap[key]
	if dep == nil {
		dep = newDep()
		depsMap[key] = dep
	}
	trackEffects(dep, DebuggerEvent{Target: target, TrackOp: op, Key: key})
}

// trackEffects wires the active effect to dep bidirectionally. Within the
// marker-bit depth the was/now masks decide whether the subscription
// already exists from the previous run, keeping re-tracking O(changed).
func trackEffects(dep *Dep, ev DebuggerEvent) {
	shouldAdd := false
	if effectTrackDepth <= maxMarkerBits {
		if !dep.newTracked() {
			dep.now |= trackOpBit
			shouldAdd = !dep.wasTracked()
		}
	} else {
		shouldAdd = !dep.subs.Contains(activeEffect)
	}
	if !shouldAdd {
		return
	}
	dep.subs.Add(activeEffect)
	activeEffect.deps = append(activeEffect.deps, dep)
	if devMode && activeEffect.onTrack != nil {
		ev.Effect = activeEffect
		activeEffect.onTrack(ev)
	}
}

// trigger re-runs (or re-schedules) every effect subscribed to the deps
// affected by a write on (target, key).
func trigger(target any, op TriggerOpType, key any, newValue, oldValue any) {
	depsMap := targetMap[identityOf(target)]
	if depsMap == nil {
		// never been tracked
		return
	}

	_, isArray := target.(*[]any)
	_, isMap := target.(map[any]any)

	var deps []*Dep
	switch {
	case op == TriggerClear:
		// the whole collection is gone, fire everything
		for _, dep := range depsMap {
			deps = append(deps, dep)
		}
	case isArray && key == any(lengthKey):
		newLen, _ := newValue.(int)
		for k, dep := range depsMap {
			if k == any(lengthKey) {
				deps = append(deps, dep)
				continue
			}
			if idx, ok := k.(int); ok && idx >= newLen {
				deps = append(deps, dep)
			}
		}
	default:
		if key != nil {
			deps = append(deps, depsMap[key])
		}
		switch op {
		case TriggerAdd:
			if !isArray {
				deps = append(deps, depsMap[iterateKey])
				if isMap {
					deps = append(deps, depsMap[mapKeyIterateKey])
				}
			} else if _, intKey := key.(int); intKey {
				// a new index extends the array, so length observers fire
				deps = append(deps, depsMap[lengthKey])
			}
		case TriggerDelete:
			if !isArray {
				deps = append(deps, depsMap[iterateKey])
				if isMap {
					deps = append(deps, depsMap[mapKeyIterateKey])
				}
			}
		case TriggerSet:
			if isMap {
				deps = append(deps, depsMap[iterateKey])
			}
		}
	}

	ev := DebuggerEvent{
		Target:    target,
		TriggerOp: op,
		Key:       key,
		NewValue:  newValue,
		OldValue:  oldValue,
	}

	if len(deps) == 1 {
		if deps[0] != nil {
			triggerEffects(deps[0].subs.ToSlice(), ev)
		}
		return
	}

	// several deps: flatten members into a fresh set so iteration stays
	// stable while effect runs mutate the underlying subscriber sets
	merged := mapset.NewThreadUnsafeSet[*ReactiveEffect]()
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		dep.subs.Each(func(e *ReactiveEffect) bool {
			merged.Add(e)
			return false
		})
	}
	triggerEffects(merged.ToSlice(), ev)
}

// triggerEffects fires computed-owning effects first so invalidation has
// propagated by the time plain effects re-read computed values.
func triggerEffects(effects []*ReactiveEffect, ev DebuggerEvent) {
	for _, e := range effects {
		if e.computed != nil {
			triggerEffect(e, ev)
		}
	}
	for _, e := range effects {
		if e.computed == nil {
			triggerEffect(e, ev)
		}
	}
}

func triggerEffect(e *ReactiveEffect, ev DebuggerEvent) {
	if e == activeEffect && !e.allowRecurse {
		return
	}
	if devMode && e.onTrigger != nil {
		ev.Effect = e
		e.onTrigger(ev)
	}
	if e.scheduler != nil {
		e.scheduler()
	} else {
		e.Run()
	}
}
