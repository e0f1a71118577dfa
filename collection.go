package reactivity

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// Map observes a map[any]any keyed by comparable values. Unlike Object it
// is treated as map-like by trigger: value writes also fire entry
// iteration, and key additions fire the key-iteration sentinel.
type Map struct {
	wrapFlags
	raw map[any]any
}

func (m *Map) rawValue() any { return m.raw }

func (m *Map) wrap(v any) any {
	if m.shallow {
		return v
	}
	if m.readonly {
		return toReadonly(v)
	}
	return toReactive(v)
}

func comparableKey(key any) bool {
	t := reflect.TypeOf(key)
	if t == nil || !t.Comparable() {
		warn("collection key of type %T is not comparable and cannot be observed.", key)
		return false
	}
	return true
}

// rawKeyOf unwraps a wrapper used as a key. When the raw target itself
// cannot be a map key (a raw map, say) the wrapper stands in for it.
func rawKeyOf(key any) any {
	rawKey := ToRaw(key)
	if t := reflect.TypeOf(rawKey); t != nil && !t.Comparable() {
		return key
	}
	return rawKey
}

// Get looks a key up by its raw form, tracking both the given key and the
// raw key when they differ.
func (m *Map) Get(key any) any {
	if !comparableKey(key) {
		return nil
	}
	rawKey := rawKeyOf(key)
	if !m.readonly {
		if key != rawKey {
			track(m.raw, TrackGet, key)
		}
		track(m.raw, TrackGet, rawKey)
	}
	if v, ok := m.raw[rawKey]; ok {
		return m.wrap(v)
	}
	return nil
}

// Set stores value under the raw form of key.
func (m *Map) Set(key, value any) *Map {
	if m.readonly {
		warn("Set operation on key %v failed: target is readonly.", key)
		return m
	}
	if !comparableKey(key) {
		return m
	}
	rawKey := rawKeyOf(key)
	if !m.shallow {
		value = ToRaw(value)
	}
	oldValue, hadKey := m.raw[rawKey]
	m.raw[rawKey] = value
	if !hadKey {
		trigger(m.raw, TriggerAdd, rawKey, value, nil)
	} else if hasChanged(value, oldValue) {
		trigger(m.raw, TriggerSet, rawKey, value, oldValue)
	}
	return m
}

func (m *Map) Has(key any) bool {
	if !comparableKey(key) {
		return false
	}
	rawKey := rawKeyOf(key)
	if key != rawKey {
		track(m.raw, TrackHas, key)
	}
	track(m.raw, TrackHas, rawKey)
	_, ok := m.raw[rawKey]
	return ok
}

func (m *Map) Delete(key any) bool {
	if m.readonly {
		warn("Delete operation on key %v failed: target is readonly.", key)
		return true
	}
	if !comparableKey(key) {
		return false
	}
	rawKey := rawKeyOf(key)
	oldValue, hadKey := m.raw[rawKey]
	delete(m.raw, rawKey)
	if hadKey {
		trigger(m.raw, TriggerDelete, rawKey, nil, oldValue)
	}
	return hadKey
}

// Clear drops every entry and fires every dep registered on the map.
func (m *Map) Clear() {
	if m.readonly {
		warn("Clear operation failed: target is readonly.")
		return
	}
	hadItems := len(m.raw) > 0
	var oldTarget map[any]any
	if devMode && hadItems {
		oldTarget = make(map[any]any, len(m.raw))
		for k, v := range m.raw {
			oldTarget[k] = v
		}
	}
	clear(m.raw)
	if hadItems {
		trigger(m.raw, TriggerClear, nil, nil, oldTarget)
	}
}

// Len observes entry iteration.
func (m *Map) Len() int {
	track(m.raw, TrackIterate, iterateKey)
	return len(m.raw)
}

// Keys observes key iteration only: value rewrites do not re-fire it,
// additions and deletions do.
func (m *Map) Keys() []any {
	track(m.raw, TrackIterate, mapKeyIterateKey)
	keys := make([]any, 0, len(m.raw))
	for k := range m.raw {
		keys = append(keys, m.wrap(k))
	}
	return keys
}

// Values observes entry iteration.
func (m *Map) Values() []any {
	track(m.raw, TrackIterate, iterateKey)
	values := make([]any, 0, len(m.raw))
	for _, v := range m.raw {
		values = append(values, m.wrap(v))
	}
	return values
}

// Entries observes entry iteration; each element is a [key, value] pair.
func (m *Map) Entries() [][2]any {
	track(m.raw, TrackIterate, iterateKey)
	entries := make([][2]any, 0, len(m.raw))
	for k, v := range m.raw {
		entries = append(entries, [2]any{m.wrap(k), m.wrap(v)})
	}
	return entries
}

// ForEach observes entry iteration and visits every entry with wrapped
// values.
func (m *Map) ForEach(fn func(value, key any)) {
	track(m.raw, TrackIterate, iterateKey)
	for k, v := range m.raw {
		fn(m.wrap(v), m.wrap(k))
	}
}

// Set observes a hash set of comparable values.
type Set struct {
	wrapFlags
	raw mapset.Set[any]
}

func (s *Set) rawValue() any { return s.raw }

func (s *Set) wrap(v any) any {
	if s.shallow {
		return v
	}
	if s.readonly {
		return toReadonly(v)
	}
	return toReactive(v)
}

// Add inserts the raw form of value, firing observers only when it was
// absent.
func (s *Set) Add(value any) *Set {
	if s.readonly {
		warn("Add operation failed: target is readonly.")
		return s
	}
	if !comparableKey(value) {
		return s
	}
	if !s.shallow {
		value = rawKeyOf(value)
	}
	if !s.raw.Contains(value) {
		s.raw.Add(value)
		trigger(s.raw, TriggerAdd, value, value, nil)
	}
	return s
}

func (s *Set) Has(value any) bool {
	if !comparableKey(value) {
		return false
	}
	rawValue := rawKeyOf(value)
	if value != rawValue {
		track(s.raw, TrackHas, value)
	}
	track(s.raw, TrackHas, rawValue)
	return s.raw.Contains(rawValue)
}

func (s *Set) Delete(value any) bool {
	if s.readonly {
		warn("Delete operation failed: target is readonly.")
		return true
	}
	if !comparableKey(value) {
		return false
	}
	rawValue := rawKeyOf(value)
	had := s.raw.Contains(rawValue)
	if had {
		s.raw.Remove(rawValue)
		trigger(s.raw, TriggerDelete, rawValue, nil, rawValue)
	}
	return had
}

// Clear empties the set and fires every dep registered on it.
func (s *Set) Clear() {
	if s.readonly {
		warn("Clear operation failed: target is readonly.")
		return
	}
	hadItems := s.raw.Cardinality() > 0
	var oldTarget mapset.Set[any]
	if devMode && hadItems {
		oldTarget = s.raw.Clone()
	}
	s.raw.Clear()
	if hadItems {
		trigger(s.raw, TriggerClear, nil, nil, oldTarget)
	}
}

// Len observes iteration.
func (s *Set) Len() int {
	track(s.raw, TrackIterate, iterateKey)
	return s.raw.Cardinality()
}

// Values observes iteration and returns the wrapped members.
func (s *Set) Values() []any {
	track(s.raw, TrackIterate, iterateKey)
	values := s.raw.ToSlice()
	for i, v := range values {
		values[i] = s.wrap(v)
	}
	return values
}

// ForEach observes iteration and visits every member.
func (s *Set) ForEach(fn func(value any)) {
	track(s.raw, TrackIterate, iterateKey)
	s.raw.Each(func(v any) bool {
		fn(s.wrap(v))
		return false
	})
}
