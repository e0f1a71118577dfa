package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// dep membership and the effect's dep list must mirror each other exactly
// whenever no effect is running
func TestDepLinksAreBidirectional(t *testing.T) {
	o := Reactive(map[string]any{"a": 1, "b": 2}).(*Object)
	runner := NewEffect(func() any {
		return o.Get("a").(int) + o.Get("b").(int)
	}, nil)
	e := runner.Effect

	assert.Len(t, e.deps, 2)
	for _, dep := range e.deps {
		assert.True(t, dep.subs.Contains(e))
	}

	Stop(runner)
	assert.Empty(t, e.deps)
	depsMap := targetMap[identityOf(o.raw)]
	for _, dep := range depsMap {
		assert.False(t, dep.subs.Contains(e))
	}
}

// the marker bitmasks must be clean outside a tracking pass
func TestDepMarkersClearAfterRun(t *testing.T) {
	o := Reactive(map[string]any{"a": 1}).(*Object)
	NewEffect(func() any {
		return o.Get("a")
	}, nil)

	for _, dep := range targetMap[identityOf(o.raw)] {
		assert.Zero(t, dep.was)
		assert.Zero(t, dep.now)
	}

	o.Set("a", 2)
	for _, dep := range targetMap[identityOf(o.raw)] {
		assert.Zero(t, dep.was)
		assert.Zero(t, dep.now)
	}
}

// markers must clear even when nesting spills past the marker bit capacity
func TestDepMarkersClearAfterDeepNesting(t *testing.T) {
	r := NewRef(0).(*Ref)
	var nest func(depth int)
	nest = func(depth int) {
		if depth == 0 {
			r.Value()
			return
		}
		NewEffect(func() any {
			nest(depth - 1)
			return nil
		}, nil)
	}
	nest(maxMarkerBits + 3)

	assert.Zero(t, r.dep.was)
	assert.Zero(t, r.dep.now)
	assert.Zero(t, effectTrackDepth)
	assert.EqualValues(t, 1<<0, trackOpBit)
}

// a panic in user code must not corrupt the tracking globals
func TestPanicRestoresTrackingState(t *testing.T) {
	r1 := NewRef(1)
	assert.Panics(t, func() {
		NewEffect(func() any {
			r1.Value()
			panic("user failure")
		}, nil)
	})

	assert.Nil(t, activeEffect)
	assert.Zero(t, effectTrackDepth)
	assert.True(t, shouldTrack)

	// tracking still works afterwards
	r2 := NewRef(1)
	var dummy any
	NewEffect(func() any {
		dummy = r2.Value()
		return nil
	}, nil)
	r2.SetValue(2)
	assert.Equal(t, 2, dummy)
}

// stale subscriptions must be pruned incrementally, not rebuilt
func TestIncrementalReconciliation(t *testing.T) {
	o := Reactive(map[string]any{"a": 1, "b": 2, "flag": true}).(*Object)
	runner := NewEffect(func() any {
		if o.Get("flag").(bool) {
			return o.Get("a")
		}
		return o.Get("b")
	}, nil)
	e := runner.Effect

	depsMap := targetMap[identityOf(o.raw)]
	assert.True(t, depsMap["a"].subs.Contains(e))
	assert.Nil(t, depsMap["b"])

	o.Set("flag", false)
	assert.False(t, depsMap["a"].subs.Contains(e))
	assert.True(t, depsMap["b"].subs.Contains(e))
	assert.Len(t, e.deps, 2)
}
