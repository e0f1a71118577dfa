package reactivity

// RefLike is satisfied by every single-cell observable box: plain refs,
// shallow refs, custom refs, object refs and computed values.
type RefLike interface {
	Value() any
	SetValue(v any)
	isRef()
}

// depHolder is the subset of refs that own an inline Dep.
type depHolder interface {
	depCell() *Dep
}

func trackRefValue(r RefLike) {
	if !shouldTrack || activeEffect == nil {
		return
	}
	if d, ok := r.(depHolder); ok {
		trackEffects(d.depCell(), DebuggerEvent{Target: r, TrackOp: TrackGet, Key: refValueKey})
	}
}

func triggerRefValue(r RefLike, newValue any) {
	if d, ok := r.(depHolder); ok {
		triggerEffects(d.depCell().subs.ToSlice(), DebuggerEvent{
			Target:    r,
			TriggerOp: TriggerSet,
			Key:       refValueKey,
			NewValue:  newValue,
		})
	}
}

// Ref is the single-cell observable box. Deep refs run object values
// through Reactive so nested mutations are observed too.
type Ref struct {
	rawValue any
	value    any
	dep      *Dep
	shallow  bool
}

func (r *Ref) isRef()        {}
func (r *Ref) depCell() *Dep { return r.dep }

// NewRef boxes value. A value that is already a ref is returned unchanged.
func NewRef(value any) RefLike {
	return newRef(value, false)
}

// NewShallowRef boxes value without deep conversion; only .Value writes
// are observed.
func NewShallowRef(value any) RefLike {
	return newRef(value, true)
}

func newRef(value any, shallow bool) RefLike {
	if r, ok := value.(RefLike); ok {
		return r
	}
	r := &Ref{dep: newDep(), shallow: shallow}
	if shallow {
		r.rawValue = value
		r.value = value
	} else {
		r.rawValue = ToRaw(value)
		r.value = toReactive(r.rawValue)
	}
	return r
}

func (r *Ref) Value() any {
	trackRefValue(r)
	return r.value
}

func (r *Ref) SetValue(value any) {
	useDirectValue := r.shallow || IsShallow(value) || IsReadonly(value)
	if !useDirectValue {
		value = ToRaw(value)
	}
	if !hasChanged(value, r.rawValue) {
		return
	}
	r.rawValue = value
	if useDirectValue {
		r.value = value
	} else {
		r.value = toReactive(value)
	}
	triggerRefValue(r, value)
}

// IsRef reports whether x is any kind of ref.
func IsRef(x any) bool {
	_, ok := x.(RefLike)
	return ok
}

// Unref returns x.Value() for refs and x itself otherwise.
func Unref(x any) any {
	if r, ok := x.(RefLike); ok {
		return r.Value()
	}
	return x
}

// TriggerRef force-fires the subscribers of a ref, for cases where a
// shallow ref's inner value was mutated in place.
func TriggerRef(r RefLike) {
	triggerRefValue(r, nil)
}

// CustomRefFactory receives the track and trigger hooks for the ref being
// built and returns its get and set implementations.
type CustomRefFactory func(track func(), trigger func()) (get func() any, set func(value any))

type customRef struct {
	dep *Dep
	get func() any
	set func(value any)
}

func (c *customRef) isRef()        {}
func (c *customRef) depCell() *Dep { return c.dep }

func (c *customRef) Value() any {
	return c.get()
}

func (c *customRef) SetValue(value any) {
	c.set(value)
}

// NewCustomRef builds a ref with user-controlled tracking. The Dep is
// still managed internally; the factory decides when to consult it.
func NewCustomRef(factory CustomRefFactory) RefLike {
	c := &customRef{dep: newDep()}
	c.get, c.set = factory(
		func() { trackRefValue(c) },
		func() { triggerRefValue(c, nil) },
	)
	return c
}

// ObjectRef reads and writes through an object property. It owns no Dep:
// tracking happens through the source container's accessors.
type ObjectRef struct {
	source       *Object
	raw          map[string]any
	key          string
	defaultValue any
}

func (r *ObjectRef) isRef() {}

func (r *ObjectRef) Value() any {
	var v any
	if r.source != nil {
		v = r.source.Get(r.key)
	} else {
		v = r.raw[r.key]
	}
	if v == nil {
		return r.defaultValue
	}
	return v
}

func (r *ObjectRef) SetValue(value any) {
	if r.source != nil {
		r.source.Set(r.key, value)
	} else {
		r.raw[r.key] = value
	}
}

// ToRef creates a ref that stays connected to source's property. Passing a
// ref returns it unchanged; passing a plain map yields a ref without
// reactivity, mirroring the source object's own nature.
func ToRef(source any, key string, defaultValue ...any) RefLike {
	var def any
	if len(defaultValue) > 0 {
		def = defaultValue[0]
	}
	switch s := source.(type) {
	case RefLike:
		return s
	case *Object:
		return &ObjectRef{source: s, key: key, defaultValue: def}
	case map[string]any:
		return &ObjectRef{raw: s, key: key, defaultValue: def}
	default:
		warn("ToRef() expects an object or a ref, got %T.", source)
		return NewRef(source)
	}
}

// ToRefs converts every property of a reactive object into an ObjectRef,
// so the pieces can be passed around without losing reactivity.
func ToRefs(obj any) map[string]RefLike {
	switch s := obj.(type) {
	case *Object:
		out := make(map[string]RefLike, len(s.raw))
		for k := range s.raw {
			out[k] = ToRef(s, k)
		}
		return out
	case map[string]any:
		warn("ToRefs() expects a reactive object but received a plain one.")
		out := make(map[string]RefLike, len(s))
		for k := range s {
			out[k] = ToRef(s, k)
		}
		return out
	default:
		warn("ToRefs() expects a reactive object, got %T.", obj)
		return nil
	}
}

// RefProxy is a shallow view over a map holding refs: reads unwrap, and
// writing a plain value over a stored ref updates the ref in place.
type RefProxy struct {
	raw map[string]any
}

func (p *RefProxy) Get(key string) any {
	return Unref(p.raw[key])
}

func (p *RefProxy) Set(key string, value any) {
	if oldRef, ok := p.raw[key].(RefLike); ok {
		if !IsRef(value) {
			oldRef.SetValue(value)
			return
		}
	}
	p.raw[key] = value
}

// ProxyRefs wraps an object-with-refs. Reactive containers already unwrap
// refs and pass through unchanged.
func ProxyRefs(obj any) any {
	switch s := obj.(type) {
	case *Object:
		return s
	case map[string]any:
		return &RefProxy{raw: s}
	default:
		warn("ProxyRefs() expects an object, got %T.", obj)
		return obj
	}
}
