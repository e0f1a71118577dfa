package reactivity

// Array observes reads and writes on a slice of any. The slice is
// addressed through a pointer so growth keeps the target identity stable.
// Refs stored at integer keys are never unwrapped, matching proxied array
// semantics.
type Array struct {
	wrapFlags
	raw *[]any
}

func (a *Array) rawValue() any { return a.raw }

// Get reads an index, tracking it. Out-of-range reads return nil.
func (a *Array) Get(i int) any {
	if !a.readonly {
		track(a.raw, TrackGet, i)
	}
	raw := *a.raw
	if i < 0 || i >= len(raw) {
		return nil
	}
	res := raw[i]
	if a.shallow {
		return res
	}
	if isWrappable(res) {
		if a.readonly {
			return Readonly(res)
		}
		return Reactive(res)
	}
	return res
}

// Len reads the length, tracking the length key.
func (a *Array) Len() int {
	if !a.readonly {
		track(a.raw, TrackGet, lengthKey)
	}
	return len(*a.raw)
}

// Set writes an index. Writing at or past the current length extends the
// array and counts as an add, which also fires length observers.
func (a *Array) Set(i int, value any) bool {
	if a.readonly {
		warn("Set operation on index %d failed: target is readonly.", i)
		return true
	}
	if i < 0 {
		warn("Set operation on negative index %d ignored.", i)
		return false
	}
	raw := *a.raw
	hadKey := i < len(raw)
	var oldValue any
	if hadKey {
		oldValue = raw[i]
	}
	if !a.shallow && !IsShallow(value) && !IsReadonly(value) {
		oldValue = ToRaw(oldValue)
		value = ToRaw(value)
	}
	if hadKey {
		raw[i] = value
		if hasChanged(value, oldValue) {
			trigger(a.raw, TriggerSet, i, value, oldValue)
		}
		return true
	}
	for len(raw) < i {
		raw = append(raw, nil)
	}
	raw = append(raw, value)
	*a.raw = raw
	trigger(a.raw, TriggerAdd, i, value, nil)
	return true
}

// SetLen resizes the array. Truncation fires observers of every dropped
// index along with length observers.
func (a *Array) SetLen(n int) {
	if a.readonly {
		warn("length mutation failed: target is readonly.")
		return
	}
	if n < 0 {
		warn("length mutation with negative size %d ignored.", n)
		return
	}
	raw := *a.raw
	old := len(raw)
	if n == old {
		return
	}
	if n < old {
		for i := n; i < old; i++ {
			raw[i] = nil
		}
		*a.raw = raw[:n]
	} else {
		for len(raw) < n {
			raw = append(raw, nil)
		}
		*a.raw = raw
	}
	trigger(a.raw, TriggerSet, lengthKey, n, old)
}

// Push appends items, pausing tracking around the raw mutation the way all
// length-mutating operations do.
func (a *Array) Push(items ...any) int {
	if a.readonly {
		warn("Push failed: target is readonly.")
		return len(*a.raw)
	}
	PauseTracking()
	raw := *a.raw
	base := len(raw)
	raw = append(raw, items...)
	*a.raw = raw
	ResetTracking()
	for off, item := range items {
		trigger(a.raw, TriggerAdd, base+off, item, nil)
	}
	return len(*a.raw)
}

// Pop removes and returns the last element, or nil when empty.
func (a *Array) Pop() any {
	if a.readonly {
		warn("Pop failed: target is readonly.")
		return nil
	}
	PauseTracking()
	raw := *a.raw
	n := len(raw)
	var res any
	if n > 0 {
		res = raw[n-1]
		raw[n-1] = nil
		*a.raw = raw[:n-1]
	}
	ResetTracking()
	if n > 0 {
		trigger(a.raw, TriggerDelete, n-1, nil, res)
		trigger(a.raw, TriggerSet, lengthKey, n-1, n)
	}
	return res
}

// Shift removes and returns the first element, or nil when empty.
func (a *Array) Shift() any {
	if a.readonly {
		warn("Shift failed: target is readonly.")
		return nil
	}
	PauseTracking()
	raw := *a.raw
	n := len(raw)
	var res any
	var prev []any
	if n > 0 {
		prev = append(prev, raw...)
		res = raw[0]
		copy(raw, raw[1:])
		raw[n-1] = nil
		*a.raw = raw[:n-1]
	}
	ResetTracking()
	if n > 0 {
		raw = *a.raw
		for i := 0; i < n-1; i++ {
			if hasChanged(raw[i], prev[i]) {
				trigger(a.raw, TriggerSet, i, raw[i], prev[i])
			}
		}
		trigger(a.raw, TriggerDelete, n-1, nil, prev[n-1])
		trigger(a.raw, TriggerSet, lengthKey, n-1, n)
	}
	return res
}

// Unshift prepends items and returns the new length.
func (a *Array) Unshift(items ...any) int {
	if a.readonly {
		warn("Unshift failed: target is readonly.")
		return len(*a.raw)
	}
	if len(items) == 0 {
		return len(*a.raw)
	}
	PauseTracking()
	prev := *a.raw
	oldN := len(prev)
	next := make([]any, 0, oldN+len(items))
	next = append(next, items...)
	next = append(next, prev...)
	*a.raw = next
	ResetTracking()
	for i := 0; i < oldN; i++ {
		if hasChanged(next[i], prev[i]) {
			trigger(a.raw, TriggerSet, i, next[i], prev[i])
		}
	}
	for i := oldN; i < len(next); i++ {
		trigger(a.raw, TriggerAdd, i, next[i], nil)
	}
	trigger(a.raw, TriggerSet, lengthKey, len(next), oldN)
	return len(next)
}

// Splice removes deleteCount elements at start, inserts items in their
// place, and returns the removed elements. Negative start counts from the
// end.
func (a *Array) Splice(start, deleteCount int, items ...any) []any {
	if a.readonly {
		warn("Splice failed: target is readonly.")
		return nil
	}
	PauseTracking()
	prev := *a.raw
	oldN := len(prev)
	if start < 0 {
		start += oldN
	}
	if start < 0 {
		start = 0
	}
	if start > oldN {
		start = oldN
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > oldN-start {
		deleteCount = oldN - start
	}
	removed := make([]any, deleteCount)
	copy(removed, prev[start:start+deleteCount])

	next := make([]any, 0, oldN-deleteCount+len(items))
	next = append(next, prev[:start]...)
	next = append(next, items...)
	next = append(next, prev[start+deleteCount:]...)
	*a.raw = next
	ResetTracking()

	newN := len(next)
	common := oldN
	if newN < common {
		common = newN
	}
	for i := start; i < common; i++ {
		if hasChanged(next[i], prev[i]) {
			trigger(a.raw, TriggerSet, i, next[i], prev[i])
		}
	}
	for i := oldN; i < newN; i++ {
		trigger(a.raw, TriggerAdd, i, next[i], nil)
	}
	for i := newN; i < oldN; i++ {
		trigger(a.raw, TriggerDelete, i, nil, prev[i])
	}
	if oldN != newN {
		trigger(a.raw, TriggerSet, lengthKey, newN, oldN)
	}
	return removed
}

// Includes reports whether value is present, searching by both the value
// as given and its raw form so either side of a wrap matches.
func (a *Array) Includes(value any) bool {
	_, found := a.search(value, false)
	return found
}

// IndexOf returns the first index holding value, or -1.
func (a *Array) IndexOf(value any) int {
	i, _ := a.search(value, false)
	return i
}

// LastIndexOf returns the last index holding value, or -1.
func (a *Array) LastIndexOf(value any) int {
	i, _ := a.search(value, true)
	return i
}

// search tracks every index plus length, then scans with the argument as
// given and once more with its raw form if the first pass misses.
func (a *Array) search(value any, fromEnd bool) (int, bool) {
	raw := *a.raw
	if !a.readonly {
		track(a.raw, TrackGet, lengthKey)
		for i := range raw {
			track(a.raw, TrackGet, i)
		}
	}
	if i, ok := scan(raw, value, fromEnd); ok {
		return i, true
	}
	rawNeedle := ToRaw(value)
	if hasChanged(rawNeedle, value) {
		return scan(raw, rawNeedle, fromEnd)
	}
	return -1, false
}

func scan(raw []any, needle any, fromEnd bool) (int, bool) {
	if fromEnd {
		for i := len(raw) - 1; i >= 0; i-- {
			if sameValue(raw[i], needle) {
				return i, true
			}
		}
	} else {
		for i, el := range raw {
			if sameValue(el, needle) {
				return i, true
			}
		}
	}
	return -1, false
}

// Keys enumerates the valid indices, observing length.
func (a *Array) Keys() []int {
	if !a.readonly {
		track(a.raw, TrackIterate, lengthKey)
	}
	keys := make([]int, len(*a.raw))
	for i := range keys {
		keys[i] = i
	}
	return keys
}

// Values returns the wrapped elements in order, observing length and each
// index.
func (a *Array) Values() []any {
	if !a.readonly {
		track(a.raw, TrackIterate, lengthKey)
	}
	out := make([]any, len(*a.raw))
	for i := range out {
		out[i] = a.Get(i)
	}
	return out
}
