package reactivity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wirefield/reactivity"
)

// should stop every effect created inside the scope
func TestScopeStopsItsEffects(t *testing.T) {
	scope := reactivity.NewEffectScope(false)
	r := reactivity.NewRef(1)
	var dummy any
	scope.Run(func() any {
		reactivity.NewEffect(func() any {
			dummy = r.Value()
			return nil
		}, nil)
		return nil
	})

	r.SetValue(2)
	assert.Equal(t, 2, dummy)

	scope.Stop()
	r.SetValue(3)
	assert.Equal(t, 2, dummy)
	assert.False(t, scope.Active())
}

// should stop nested scopes with the parent
func TestScopeStopsNestedScopes(t *testing.T) {
	scope := reactivity.NewEffectScope(false)
	r := reactivity.NewRef(1)
	var dummy any
	scope.Run(func() any {
		child := reactivity.NewEffectScope(false)
		child.Run(func() any {
			reactivity.NewEffect(func() any {
				dummy = r.Value()
				return nil
			}, nil)
			return nil
		})
		return nil
	})

	scope.Stop()
	r.SetValue(2)
	assert.Equal(t, 1, dummy)
}

// a detached scope should survive its parent's stop
func TestDetachedScope(t *testing.T) {
	scope := reactivity.NewEffectScope(false)
	r := reactivity.NewRef(1)
	var dummy any
	scope.Run(func() any {
		detached := reactivity.NewEffectScope(true)
		detached.Run(func() any {
			reactivity.NewEffect(func() any {
				dummy = r.Value()
				return nil
			}, nil)
			return nil
		})
		return nil
	})

	scope.Stop()
	r.SetValue(2)
	assert.Equal(t, 2, dummy)
}

// should run registered cleanups on stop
func TestOnScopeDispose(t *testing.T) {
	scope := reactivity.NewEffectScope(false)
	disposed := 0
	scope.Run(func() any {
		reactivity.OnScopeDispose(func() { disposed++ })
		return nil
	})

	assert.Equal(t, 0, disposed)
	scope.Stop()
	assert.Equal(t, 1, disposed)
	// stopping twice does not re-run cleanups
	scope.Stop()
	assert.Equal(t, 1, disposed)
}

// should route effects to an explicitly passed scope
func TestEffectWithExplicitScope(t *testing.T) {
	scope := reactivity.NewEffectScope(false)
	r := reactivity.NewRef(1)
	var dummy any
	reactivity.NewEffect(func() any {
		dummy = r.Value()
		return nil
	}, &reactivity.EffectOptions{Scope: scope})

	r.SetValue(2)
	assert.Equal(t, 2, dummy)

	scope.Stop()
	r.SetValue(3)
	assert.Equal(t, 2, dummy)
}

// should report the active scope during Run
func TestGetCurrentScope(t *testing.T) {
	assert.Nil(t, reactivity.GetCurrentScope())
	scope := reactivity.NewEffectScope(false)
	scope.Run(func() any {
		assert.Same(t, scope, reactivity.GetCurrentScope())
		return nil
	})
	assert.Nil(t, reactivity.GetCurrentScope())
}
