package reactivity

// ComputedRef is a lazy cached derivation. Its owned effect never re-runs
// on its own: the scheduler only marks the cache dirty and invalidates
// downstream subscribers, so the getter runs again on the next read.
type ComputedRef struct {
	dep    *Dep
	value  any
	getter func() any
	setter func(value any)
	effect *ReactiveEffect

	dirty bool
	// false disables memoization entirely (the SSR configuration)
	cacheable bool
}

func (c *ComputedRef) isRef()        {}
func (c *ComputedRef) depCell() *Dep { return c.dep }

type ComputedOptions struct {
	Get func() any
	Set func(value any)
	// SSR disables caching; every read re-runs the getter untracked.
	SSR       bool
	OnTrack   func(DebuggerEvent)
	OnTrigger func(DebuggerEvent)
}

// NewComputed creates a readonly computed from a getter. The getter does
// not run until the first read.
func NewComputed(getter func() any) *ComputedRef {
	return NewComputedWithOptions(ComputedOptions{Get: getter})
}

// NewWritableComputed creates a computed whose writes delegate to set.
func NewWritableComputed(get func() any, set func(value any)) *ComputedRef {
	return NewComputedWithOptions(ComputedOptions{Get: get, Set: set})
}

func NewComputedWithOptions(opts ComputedOptions) *ComputedRef {
	if opts.Get == nil {
		warn("computed requires a getter.")
		opts.Get = func() any { return nil }
	}
	c := &ComputedRef{
		dep:       newDep(),
		getter:    opts.Get,
		setter:    opts.Set,
		dirty:     true,
		cacheable: !opts.SSR,
	}
	c.effect = newReactiveEffect(c.getter, func() {
		if !c.dirty {
			c.dirty = true
			triggerRefValue(c, nil)
		}
	}, nil)
	c.effect.computed = c
	c.effect.active = c.cacheable
	c.effect.onTrack = opts.OnTrack
	c.effect.onTrigger = opts.OnTrigger
	return c
}

// Value subscribes the active effect to the computed's output dep, then
// refreshes the cache if a dependency invalidated it since the last read.
func (c *ComputedRef) Value() any {
	trackRefValue(c)
	if c.dirty || !c.cacheable {
		c.dirty = false
		c.value = c.effect.Run()
	}
	return c.value
}

// SetValue delegates to the user setter; a computed without one warns.
func (c *ComputedRef) SetValue(value any) {
	if c.setter == nil {
		warn("Write operation failed: computed value is readonly.")
		return
	}
	c.setter(value)
}

// Stop detaches the computed's effect from its dependencies.
func (c *ComputedRef) Stop() {
	c.effect.Stop()
}
