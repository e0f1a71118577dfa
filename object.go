package reactivity

import "sort"

// Object observes reads and writes on a map[string]any. Go has no
// transparent proxies, so interception happens through these accessors;
// the tracking semantics are otherwise those of a proxied plain object.
type Object struct {
	wrapFlags
	raw map[string]any
}

func (o *Object) rawValue() any { return o.raw }

// Get reads a key, tracking it against the active effect. Nested
// wrappable values wrap lazily on access; refs stored in the object are
// unwrapped unless the wrapper is shallow.
func (o *Object) Get(key string) any {
	if !o.readonly {
		track(o.raw, TrackGet, key)
	}
	res := o.raw[key]
	if o.shallow {
		return res
	}
	if r, ok := res.(RefLike); ok {
		return r.Value()
	}
	if isWrappable(res) {
		if o.readonly {
			return Readonly(res)
		}
		return Reactive(res)
	}
	return res
}

// Set writes a key and triggers observers when the value actually changed.
// Writing a plain value over a stored ref delegates to the ref instead.
func (o *Object) Set(key string, value any) bool {
	if o.readonly {
		warn("Set operation on key %q failed: target is readonly.", key)
		return true
	}
	oldValue := o.raw[key]
	if IsReadonly(oldValue) && IsRef(oldValue) && !IsRef(value) {
		return false
	}
	if !o.shallow {
		if !IsShallow(value) && !IsReadonly(value) {
			oldValue = ToRaw(oldValue)
			value = ToRaw(value)
		}
		if oldRef, ok := oldValue.(RefLike); ok {
			if !IsRef(value) {
				oldRef.SetValue(value)
				return true
			}
		}
	}
	_, hadKey := o.raw[key]
	o.raw[key] = value
	if !hadKey {
		trigger(o.raw, TriggerAdd, key, value, nil)
	} else if hasChanged(value, oldValue) {
		trigger(o.raw, TriggerSet, key, value, oldValue)
	}
	return true
}

// Delete removes a key, triggering observers if it existed.
func (o *Object) Delete(key string) bool {
	if o.readonly {
		warn("Delete operation on key %q failed: target is readonly.", key)
		return true
	}
	oldValue, hadKey := o.raw[key]
	delete(o.raw, key)
	if hadKey {
		trigger(o.raw, TriggerDelete, key, nil, oldValue)
	}
	return true
}

// Has is the membership test; it tracks the key under the has op.
func (o *Object) Has(key string) bool {
	_, ok := o.raw[key]
	track(o.raw, TrackHas, key)
	return ok
}

// Keys enumerates own keys, tracking the iteration sentinel so key
// additions and deletions re-fire observers.
func (o *Object) Keys() []string {
	track(o.raw, TrackIterate, iterateKey)
	keys := make([]string, 0, len(o.raw))
	for k := range o.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of keys; like Keys it observes iteration.
func (o *Object) Len() int {
	track(o.raw, TrackIterate, iterateKey)
	return len(o.raw)
}
