package reactivity

import (
	"math"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// wrapFlags is embedded in every container and answers the wrap-kind
// queries shared by all of them.
type wrapFlags struct {
	readonly bool
	shallow  bool
}

func (w wrapFlags) readonlyWrap() bool { return w.readonly }
func (w wrapFlags) shallowWrap() bool  { return w.shallow }

// proxyValue is implemented by all reactive containers.
type proxyValue interface {
	rawValue() any
	readonlyWrap() bool
	shallowWrap() bool
}

// One cache per wrap kind: wrapping the same target twice yields the same
// container identity, and the cache keeps the raw target alive so its
// identity key stays valid.
var (
	reactiveCache        = map[uintptr]any{}
	readonlyCache        = map[uintptr]any{}
	shallowReactiveCache = map[uintptr]any{}
	shallowReadonlyCache = map[uintptr]any{}

	markRawPinned = map[uintptr]any{}
)

func cacheFor(readonly, shallow bool) map[uintptr]any {
	switch {
	case readonly && shallow:
		return shallowReadonlyCache
	case readonly:
		return readonlyCache
	case shallow:
		return shallowReactiveCache
	default:
		return reactiveCache
	}
}

// Reactive returns a deeply reactive container over target. Supported
// targets are map[string]any, *[]any, map[any]any and mapset.Set[any];
// slices must be addressed through a pointer so their identity survives
// growth. Anything else is returned unchanged with a dev warning.
func Reactive(target any) any {
	// reactive() on a readonly wrapper returns it untouched
	if IsReadonly(target) {
		return target
	}
	return createReactiveObject(target, false, false)
}

// Readonly returns a deeply readonly view of target. Writes through the
// view warn and do nothing. Get, and every read on an Array, is not
// tracked; Has and the iteration reads of Object, Map and Set track
// against the same deps as the mutable container of the same raw target.
func Readonly(target any) any {
	return createReactiveObject(target, true, false)
}

// ShallowReactive is Reactive without recursive wrapping or ref unwrapping.
func ShallowReactive(target any) any {
	return createReactiveObject(target, false, true)
}

// ShallowReadonly makes only root-level access readonly.
func ShallowReadonly(target any) any {
	return createReactiveObject(target, true, true)
}

func createReactiveObject(target any, readonly, shallow bool) any {
	if pv, ok := target.(proxyValue); ok {
		// an existing wrapper passes through unless a readonly view of a
		// mutable wrapper was requested; then rebuild over the raw target
		if !(readonly && !pv.readonlyWrap()) {
			return target
		}
		target = pv.rawValue()
	}
	id := identityOf(target)
	if id == 0 {
		warn("value cannot be made reactive: %T", target)
		return target
	}
	if _, pinned := markRawPinned[id]; pinned {
		return target
	}
	cache := cacheFor(readonly, shallow)
	if existing, ok := cache[id]; ok {
		return existing
	}

	var wrapped any
	flags := wrapFlags{readonly: readonly, shallow: shallow}
	switch t := target.(type) {
	case map[string]any:
		wrapped = &Object{raw: t, wrapFlags: flags}
	case *[]any:
		wrapped = &Array{raw: t, wrapFlags: flags}
	case map[any]any:
		wrapped = &Map{raw: t, wrapFlags: flags}
	case mapset.Set[any]:
		wrapped = &Set{raw: t, wrapFlags: flags}
	default:
		warn("value cannot be made reactive: %T", target)
		return target
	}
	cache[id] = wrapped
	return wrapped
}

// IsReactive reports whether x is a non-readonly reactive container.
func IsReactive(x any) bool {
	if pv, ok := x.(proxyValue); ok {
		return !pv.readonlyWrap()
	}
	return false
}

// IsReadonly reports whether x is a readonly container or a computed
// without a setter.
func IsReadonly(x any) bool {
	switch v := x.(type) {
	case proxyValue:
		return v.readonlyWrap()
	case *ComputedRef:
		return v.setter == nil
	}
	return false
}

// IsShallow reports whether x is a shallow container or a shallow ref.
func IsShallow(x any) bool {
	switch v := x.(type) {
	case proxyValue:
		return v.shallowWrap()
	case *Ref:
		return v.shallow
	}
	return false
}

// IsProxy reports whether x is any reactive container.
func IsProxy(x any) bool {
	_, ok := x.(proxyValue)
	return ok
}

// ToRaw returns the underlying target of a reactive container, unwrapping
// nested wrappers. Non-containers come back unchanged.
func ToRaw(x any) any {
	if pv, ok := x.(proxyValue); ok {
		return ToRaw(pv.rawValue())
	}
	return x
}

// MarkRaw pins x so it is never wrapped by Reactive or Readonly.
func MarkRaw(x any) any {
	id := identityOf(x)
	if id == 0 {
		warn("value cannot be marked raw: %T", x)
		return x
	}
	markRawPinned[id] = x
	return x
}

// Dispose forgets everything held for target: its deps in the registry,
// its cached wrappers, and any MarkRaw pin. It stands in for the weak-keyed
// registry the source design assumes.
func Dispose(target any) {
	id := identityOf(ToRaw(target))
	if id == 0 {
		return
	}
	delete(targetMap, id)
	delete(reactiveCache, id)
	delete(readonlyCache, id)
	delete(shallowReactiveCache, id)
	delete(shallowReadonlyCache, id)
	delete(markRawPinned, id)
}

// identityOf keys a reference-shaped target for the registry and caches.
// Zero means the value has no usable identity.
func identityOf(target any) uintptr {
	if target == nil {
		return 0
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.Pointer()
	}
	return 0
}

func isWrappable(v any) bool {
	switch v.(type) {
	case map[string]any, *[]any, map[any]any, mapset.Set[any]:
		return true
	}
	return false
}

func toReactive(v any) any {
	if isWrappable(v) {
		return Reactive(v)
	}
	return v
}

func toReadonly(v any) any {
	if isWrappable(v) {
		return Readonly(v)
	}
	return v
}

// hasChanged is the identity comparison used before triggering: same value
// or both NaN means unchanged. Values of uncomparable dynamic type compare
// by reference.
func hasChanged(value, oldValue any) bool {
	tv, to := reflect.TypeOf(value), reflect.TypeOf(oldValue)
	if tv != to {
		return true
	}
	if tv == nil {
		// both nil
		return false
	}
	if !tv.Comparable() {
		v1, v2 := reflect.ValueOf(value), reflect.ValueOf(oldValue)
		switch v1.Kind() {
		case reflect.Map, reflect.Slice, reflect.Func:
			return v1.Pointer() != v2.Pointer()
		}
		return true
	}
	if value == oldValue {
		return false
	}
	switch f1 := value.(type) {
	case float64:
		if f2, ok := oldValue.(float64); ok && math.IsNaN(f1) && math.IsNaN(f2) {
			return false
		}
	case float32:
		if f2, ok := oldValue.(float32); ok && math.IsNaN(float64(f1)) && math.IsNaN(float64(f2)) {
			return false
		}
	}
	return true
}

func sameValue(a, b any) bool {
	return !hasChanged(a, b)
}
